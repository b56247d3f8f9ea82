// Package mocks provides a hand-rolled, function-field fake of api.Client
// for unit tests. Unset methods return zero values.
package mocks

import (
	"context"
	"io"

	"github.com/veridoc/portal/internal/portal/api"
	"github.com/veridoc/portal/internal/portal/models"
)

// FakeClient implements api.Client. Set only the function fields a test
// cares about; calls to unset fields succeed with zero values so tests
// stay short.
type FakeClient struct {
	LoginFn         func(ctx context.Context, email, password string) (*models.User, string, error)
	RegisterFn      func(ctx context.Context, email, password, name string) (*models.User, string, error)
	RegisterAdminFn func(ctx context.Context, email, password, name string) (*models.User, string, error)
	ProfileFn       func(ctx context.Context) (*models.User, error)

	UploadFn        func(ctx context.Context, filename string, r io.Reader, size int64, progress func(int)) (*models.Document, error)
	ListDocumentsFn func(ctx context.Context, page, perPage int) ([]models.Document, models.Pagination, error)

	ValidateFn       func(ctx context.Context, docID int64) (*models.ValidationResult, error)
	RevalidateFn     func(ctx context.Context, docID int64) (*models.ValidationResult, error)
	ResultsFn        func(ctx context.Context, docID int64) (*models.ValidationResult, error)
	HistoryFn        func(ctx context.Context, q api.HistoryQuery) ([]models.ValidationResult, models.Pagination, error)
	DownloadReportFn func(ctx context.Context, docID int64, w io.Writer) error

	AdminStatsFn    func(ctx context.Context) (*models.AdminStats, error)
	AdminActivityFn func(ctx context.Context) ([]models.ActivityItem, error)

	InstitutionStatsFn func(ctx context.Context) (*models.InstitutionStats, error)
	ListRecordsFn      func(ctx context.Context, page, perPage int) ([]models.InstitutionRecord, models.Pagination, error)
	AddRecordFn        func(ctx context.Context, rec models.InstitutionRecord) (*models.InstitutionRecord, error)
	BulkAddRecordsFn   func(ctx context.Context, recs []models.InstitutionRecord) (string, error)
	DeleteRecordFn     func(ctx context.Context, id int64) error
}

var _ api.Client = (*FakeClient)(nil)

func (f *FakeClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if f.LoginFn == nil {
		return nil, "", nil
	}
	return f.LoginFn(ctx, email, password)
}

func (f *FakeClient) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	if f.RegisterFn == nil {
		return nil, "", nil
	}
	return f.RegisterFn(ctx, email, password, name)
}

func (f *FakeClient) RegisterAdmin(ctx context.Context, email, password, name string) (*models.User, string, error) {
	if f.RegisterAdminFn == nil {
		return nil, "", nil
	}
	return f.RegisterAdminFn(ctx, email, password, name)
}

func (f *FakeClient) Profile(ctx context.Context) (*models.User, error) {
	if f.ProfileFn == nil {
		return nil, nil
	}
	return f.ProfileFn(ctx)
}

func (f *FakeClient) Upload(ctx context.Context, filename string, r io.Reader, size int64, progress func(int)) (*models.Document, error) {
	if f.UploadFn == nil {
		return nil, nil
	}
	return f.UploadFn(ctx, filename, r, size, progress)
}

func (f *FakeClient) ListDocuments(ctx context.Context, page, perPage int) ([]models.Document, models.Pagination, error) {
	if f.ListDocumentsFn == nil {
		return nil, models.Pagination{}, nil
	}
	return f.ListDocumentsFn(ctx, page, perPage)
}

func (f *FakeClient) Validate(ctx context.Context, docID int64) (*models.ValidationResult, error) {
	if f.ValidateFn == nil {
		return nil, nil
	}
	return f.ValidateFn(ctx, docID)
}

func (f *FakeClient) Revalidate(ctx context.Context, docID int64) (*models.ValidationResult, error) {
	if f.RevalidateFn == nil {
		return nil, nil
	}
	return f.RevalidateFn(ctx, docID)
}

func (f *FakeClient) Results(ctx context.Context, docID int64) (*models.ValidationResult, error) {
	if f.ResultsFn == nil {
		return nil, nil
	}
	return f.ResultsFn(ctx, docID)
}

func (f *FakeClient) History(ctx context.Context, q api.HistoryQuery) ([]models.ValidationResult, models.Pagination, error) {
	if f.HistoryFn == nil {
		return nil, models.Pagination{}, nil
	}
	return f.HistoryFn(ctx, q)
}

func (f *FakeClient) DownloadReport(ctx context.Context, docID int64, w io.Writer) error {
	if f.DownloadReportFn == nil {
		return nil
	}
	return f.DownloadReportFn(ctx, docID, w)
}

func (f *FakeClient) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	if f.AdminStatsFn == nil {
		return nil, nil
	}
	return f.AdminStatsFn(ctx)
}

func (f *FakeClient) AdminActivity(ctx context.Context) ([]models.ActivityItem, error) {
	if f.AdminActivityFn == nil {
		return nil, nil
	}
	return f.AdminActivityFn(ctx)
}

func (f *FakeClient) InstitutionStats(ctx context.Context) (*models.InstitutionStats, error) {
	if f.InstitutionStatsFn == nil {
		return nil, nil
	}
	return f.InstitutionStatsFn(ctx)
}

func (f *FakeClient) ListRecords(ctx context.Context, page, perPage int) ([]models.InstitutionRecord, models.Pagination, error) {
	if f.ListRecordsFn == nil {
		return nil, models.Pagination{}, nil
	}
	return f.ListRecordsFn(ctx, page, perPage)
}

func (f *FakeClient) AddRecord(ctx context.Context, rec models.InstitutionRecord) (*models.InstitutionRecord, error) {
	if f.AddRecordFn == nil {
		return nil, nil
	}
	return f.AddRecordFn(ctx, rec)
}

func (f *FakeClient) BulkAddRecords(ctx context.Context, recs []models.InstitutionRecord) (string, error) {
	if f.BulkAddRecordsFn == nil {
		return "", nil
	}
	return f.BulkAddRecordsFn(ctx, recs)
}

func (f *FakeClient) DeleteRecord(ctx context.Context, id int64) error {
	if f.DeleteRecordFn == nil {
		return nil
	}
	return f.DeleteRecordFn(ctx, id)
}
