package models

// Kind is the direction of a transaction or the type of a category.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}
