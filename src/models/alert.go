package models

type AlertLevel string

const (
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

type AlertSource string

const (
	AlertSourceBudget AlertSource = "budget"
	AlertSourceDebt   AlertSource = "debt"
	AlertSourceCard   AlertSource = "card"
)

type Alert struct {
	ID      string      `json:"id"`
	Level   AlertLevel  `json:"level"`
	Source  AlertSource `json:"source"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Link    string      `json:"link"`
}
