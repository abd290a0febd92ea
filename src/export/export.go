// Package export fetches spreadsheet and PDF renderings of a month from
// the export service.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"caudal-server/src/models"
	"caudal-server/src/session"
)

type Format string

const (
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

func (f Format) Valid() bool {
	return f == FormatExcel || f == FormatPDF
}

func (f Format) Extension() string {
	if f == FormatPDF {
		return "pdf"
	}
	return "xlsx"
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

var (
	// ErrNoData is returned when the service answers with a non-2xx status;
	// in practice the month has nothing to export.
	ErrNoData = errors.New("no transactions to export")
	// ErrUnavailable wraps transport failures reaching the service.
	ErrUnavailable = errors.New("export service unavailable")
)

// File is a downloaded export. The caller must close Body.
type File struct {
	Name        string
	ContentType string
	Body        io.ReadCloser
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  session.TokenProvider
}

func NewClient(baseURL string, timeout time.Duration, tokens session.TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// FileName is the download name of a month's export.
func FileName(ym models.YearMonth, f Format) string {
	return fmt.Sprintf("Caudal_%s.%s", ym, f.Extension())
}

// Fetch requests the export of one month on behalf of the session's user.
func (c *Client) Fetch(ctx context.Context, s session.Session, f Format, ym models.YearMonth) (*File, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("unknown export format %q", f)
	}
	token, err := c.tokens.Token(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("failed to mint service token: %w", err)
	}

	q := url.Values{}
	q.Set("user_id", s.UserID.String())
	q.Set("mes", ym.String())
	endpoint := fmt.Sprintf("%s/exportar/%s?%s", c.baseURL, f, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("%w (status %d)", ErrNoData, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = f.ContentType()
	}
	return &File{Name: FileName(ym, f), ContentType: contentType, Body: resp.Body}, nil
}
