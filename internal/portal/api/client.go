// Package api wraps the verification backend's REST interface. It attaches
// the bearer token, decodes the response envelope, and normalizes failures
// into typed errors that the rest of the client can branch on.
package api

import (
	"context"
	"io"

	"github.com/veridoc/portal/internal/portal/models"
)

// HistoryQuery carries the query parameters accepted by GET /history.
// Zero values are omitted from the request.
type HistoryQuery struct {
	Page    int
	PerPage int
	Verdict models.Verdict // empty means all verdicts
	Search  string         // filename search term
}

// Client is the backend operation surface consumed by session, upload and
// page controllers. One method per REST operation; all methods honor
// context cancellation and the configured per-call timeout.
type Client interface {
	// Auth.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Register(ctx context.Context, email, password, name string) (*models.User, string, error)
	RegisterAdmin(ctx context.Context, email, password, name string) (*models.User, string, error)
	Profile(ctx context.Context) (*models.User, error)

	// Documents.
	Upload(ctx context.Context, filename string, r io.Reader, size int64, progress func(percent int)) (*models.Document, error)
	ListDocuments(ctx context.Context, page, perPage int) ([]models.Document, models.Pagination, error)

	// Validation.
	Validate(ctx context.Context, docID int64) (*models.ValidationResult, error)
	Revalidate(ctx context.Context, docID int64) (*models.ValidationResult, error)
	Results(ctx context.Context, docID int64) (*models.ValidationResult, error)
	History(ctx context.Context, q HistoryQuery) ([]models.ValidationResult, models.Pagination, error)
	DownloadReport(ctx context.Context, docID int64, w io.Writer) error

	// Admin.
	AdminStats(ctx context.Context) (*models.AdminStats, error)
	AdminActivity(ctx context.Context) ([]models.ActivityItem, error)

	// Institution.
	InstitutionStats(ctx context.Context) (*models.InstitutionStats, error)
	ListRecords(ctx context.Context, page, perPage int) ([]models.InstitutionRecord, models.Pagination, error)
	AddRecord(ctx context.Context, rec models.InstitutionRecord) (*models.InstitutionRecord, error)
	BulkAddRecords(ctx context.Context, recs []models.InstitutionRecord) (string, error)
	DeleteRecord(ctx context.Context, id int64) error
}
