package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/veridoc/portal/internal/portal/api"
	"github.com/veridoc/portal/internal/portal/api/mocks"
	"github.com/veridoc/portal/internal/portal/models"
	"github.com/veridoc/portal/internal/portal/session"
	"github.com/veridoc/portal/internal/portal/upload"
)

type memStore struct{ token string }

func (m *memStore) Load(context.Context) (string, error)   { return m.token, nil }
func (m *memStore) Save(_ context.Context, t string) error { m.token = t; return nil }
func (m *memStore) Clear(context.Context) error            { m.token = ""; return nil }

var _ session.TokenStore = (*memStore)(nil)

// newTestApp builds an App over fakes with the terminal replaced by the
// given input and a capture buffer for output.
func newTestApp(t *testing.T, client *mocks.FakeClient, input string) (*App, *bytes.Buffer) {
	t.Helper()
	sess := session.NewService(client, &memStore{}, nil)
	a := NewApp(client, sess, upload.NewWorkflow(client, nil, nil), nil)
	out := &bytes.Buffer{}
	a.out = out
	a.reader = bufio.NewReader(strings.NewReader(input))
	return a, out
}

// loginAs puts the session into an authenticated state with the given role.
func loginAs(t *testing.T, a *App, client *mocks.FakeClient, role models.Role) {
	t.Helper()
	client.LoginFn = func(context.Context, string, string) (*models.User, string, error) {
		return &models.User{ID: 1, Email: "u@example.com", Name: "U", Role: role}, "tok", nil
	}
	_, err := a.session.Login(context.Background(), "u@example.com", "pw")
	require.NoError(t, err)
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func TestLoginPage(t *testing.T) {
	stubPassword(t, "s3cret")

	var gotEmail, gotPassword string
	client := &mocks.FakeClient{
		LoginFn: func(_ context.Context, email, password string) (*models.User, string, error) {
			gotEmail, gotPassword = email, password
			return &models.User{Email: email, Name: "Jane", Role: models.RoleUser}, "tok", nil
		},
	}
	a, out := newTestApp(t, client, "jane@example.com\n")

	require.NoError(t, a.Login(context.Background()))
	require.Equal(t, "jane@example.com", gotEmail)
	require.Equal(t, "s3cret", gotPassword)
	require.Contains(t, out.String(), "Logged in as jane@example.com")
	require.True(t, a.isLoggedIn())
}

func TestLoginPage_InvalidEmailNeverCallsBackend(t *testing.T) {
	client := &mocks.FakeClient{
		LoginFn: func(context.Context, string, string) (*models.User, string, error) {
			t.Fatal("backend must not be called for an invalid email")
			return nil, "", nil
		},
	}
	a, out := newTestApp(t, client, "not-an-email\n")

	require.Error(t, a.Login(context.Background()))
	require.Contains(t, out.String(), "valid email")
}

func TestLoginPage_BadCredentials(t *testing.T) {
	stubPassword(t, "wrong")
	client := &mocks.FakeClient{
		LoginFn: func(context.Context, string, string) (*models.User, string, error) {
			return nil, "", &api.Error{Code: api.CodeUnauthorized, Message: "Invalid email or password"}
		},
	}
	a, out := newTestApp(t, client, "jane@example.com\n")

	require.Error(t, a.Login(context.Background()))
	require.Contains(t, out.String(), "Invalid email or password")
	require.False(t, a.isLoggedIn())
}

func TestRegisterAdminPage(t *testing.T) {
	stubPassword(t, "pw")
	called := false
	client := &mocks.FakeClient{
		RegisterAdminFn: func(_ context.Context, email, _, name string) (*models.User, string, error) {
			called = true
			return &models.User{Email: email, Name: name, Role: models.RoleAdmin}, "tok", nil
		},
	}
	a, out := newTestApp(t, client, "root@example.com\nRoot\n")

	require.NoError(t, a.RegisterAdmin(context.Background()))
	require.True(t, called)
	require.Contains(t, out.String(), "Account created for root@example.com (admin)")
}

func TestGuard_PagesRequireLogin(t *testing.T) {
	client := &mocks.FakeClient{}
	a, out := newTestApp(t, client, "")
	a.session.Init(context.Background()) // settles loading with no stored token

	require.NoError(t, a.Dashboard(context.Background()))
	require.Contains(t, out.String(), "Please log in to continue")
}

func TestGuard_RecordsRequireInstitutionRole(t *testing.T) {
	client := &mocks.FakeClient{
		ListRecordsFn: func(context.Context, int, int) ([]models.InstitutionRecord, models.Pagination, error) {
			t.Fatal("records must not load for a non-institution user")
			return nil, models.Pagination{}, nil
		},
	}
	a, out := newTestApp(t, client, "")
	loginAs(t, a, client, models.RoleUser)

	require.NoError(t, a.Records(context.Background(), nil))
	require.Contains(t, out.String(), "You do not have access to this page")
}

func TestHistoryPage_FilterResetsToPageOne(t *testing.T) {
	var queries []api.HistoryQuery
	client := &mocks.FakeClient{
		HistoryFn: func(_ context.Context, q api.HistoryQuery) ([]models.ValidationResult, models.Pagination, error) {
			queries = append(queries, q)
			return nil, models.Pagination{Page: q.Page, Pages: 5, Total: 43}, nil
		},
	}
	a, _ := newTestApp(t, client, "")
	loginAs(t, a, client, models.RoleUser)

	require.NoError(t, a.History(context.Background(), []string{"page", "3"}))
	require.NoError(t, a.History(context.Background(), []string{"filter", "fake"}))

	require.Len(t, queries, 2)
	require.Equal(t, 3, queries[0].Page)
	require.Equal(t, 1, queries[1].Page, "changing the filter must refetch page 1")
	require.Equal(t, models.VerdictFake, queries[1].Verdict)
}

func TestHistoryPage_EmptyStates(t *testing.T) {
	client := &mocks.FakeClient{}
	a, out := newTestApp(t, client, "")
	loginAs(t, a, client, models.RoleUser)

	require.NoError(t, a.History(context.Background(), nil))
	require.Contains(t, out.String(), "Upload a document to get started")

	out.Reset()
	require.NoError(t, a.History(context.Background(), []string{"filter", "fake"}))
	require.Contains(t, out.String(), "No results match your current filter")
}

func TestResultsPage(t *testing.T) {
	client := &mocks.FakeClient{
		ResultsFn: func(_ context.Context, docID int64) (*models.ValidationResult, error) {
			return &models.ValidationResult{
				DocumentID:  docID,
				Verdict:     models.VerdictAuthentic,
				Scores:      models.Scores{CNNScore: 0.95, OCRConfidence: 0.91, DBMatchScore: 0.93, FinalScore: 0.93},
				ValidatedAt: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
				Document:    &models.Document{ID: docID, Filename: "diploma.pdf", FileSize: 1 << 20},
			}, nil
		},
	}
	a, out := newTestApp(t, client, "")
	loginAs(t, a, client, models.RoleUser)

	require.NoError(t, a.Results(context.Background(), []string{"42"}))
	s := out.String()
	require.Contains(t, s, "AUTHENTIC")
	require.Contains(t, s, "93.0%")
	require.Contains(t, s, "diploma.pdf")
}

func TestResultsPage_NotValidated(t *testing.T) {
	client := &mocks.FakeClient{
		ResultsFn: func(context.Context, int64) (*models.ValidationResult, error) {
			return nil, &api.Error{Code: api.CodeNotValidated, Message: "Document not validated yet"}
		},
	}
	a, out := newTestApp(t, client, "")
	loginAs(t, a, client, models.RoleUser)

	require.Error(t, a.Results(context.Background(), []string{"42"}))
	require.Contains(t, out.String(), "not been validated")
}

func TestResultsPage_Revalidate(t *testing.T) {
	revalidated := false
	client := &mocks.FakeClient{
		RevalidateFn: func(_ context.Context, docID int64) (*models.ValidationResult, error) {
			revalidated = true
			return &models.ValidationResult{DocumentID: docID, Verdict: models.VerdictSuspicious}, nil
		},
	}
	a, _ := newTestApp(t, client, "")
	loginAs(t, a, client, models.RoleUser)

	require.NoError(t, a.Results(context.Background(), []string{"42", "revalidate"}))
	require.True(t, revalidated)
}

func TestDashboard_Admin(t *testing.T) {
	client := &mocks.FakeClient{
		AdminStatsFn: func(context.Context) (*models.AdminStats, error) {
			return &models.AdminStats{
				Users: 12, Institutions: 3, Documents: 40, Validations: 37,
				Distribution: models.VerdictDistribution{Authentic: 30, Suspicious: 5, Fake: 2},
			}, nil
		},
		AdminActivityFn: func(context.Context) ([]models.ActivityItem, error) {
			return []models.ActivityItem{{DocumentID: 9, Filename: "cert.pdf", Verdict: models.VerdictFake}}, nil
		},
	}
	a, out := newTestApp(t, client, "")
	loginAs(t, a, client, models.RoleAdmin)

	require.NoError(t, a.Dashboard(context.Background()))
	s := out.String()
	require.Contains(t, s, "Admin dashboard")
	require.Contains(t, s, "30 authentic / 5 suspicious / 2 fake")
	require.Contains(t, s, "cert.pdf")
}

func TestDashboard_Institution(t *testing.T) {
	client := &mocks.FakeClient{
		InstitutionStatsFn: func(context.Context) (*models.InstitutionStats, error) {
			return &models.InstitutionStats{TotalRecords: 128}, nil
		},
	}
	a, out := newTestApp(t, client, "")
	loginAs(t, a, client, models.RoleInstitution)

	require.NoError(t, a.Dashboard(context.Background()))
	require.Contains(t, out.String(), "Registry records: 128")
}

func TestUploadPage_CancelDoesNotSubmit(t *testing.T) {
	client := &mocks.FakeClient{
		UploadFn: func(context.Context, string, io.Reader, int64, func(int)) (*models.Document, error) {
			t.Fatal("a cancelled upload must not reach the backend")
			return nil, nil
		},
	}
	path := filepath.Join(t.TempDir(), "scan.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n0000"), 0o600))

	a, out := newTestApp(t, client, "n\n")
	loginAs(t, a, client, models.RoleUser)

	require.NoError(t, a.Upload(context.Background(), []string{path}))
	require.Contains(t, out.String(), "Cancelled")
}

func TestUploadPage_RejectedFileShowsMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	client := &mocks.FakeClient{}
	a, out := newTestApp(t, client, "")
	loginAs(t, a, client, models.RoleUser)

	require.Error(t, a.Upload(context.Background(), []string{path}))
	require.Contains(t, out.String(), "Invalid file type. Allowed: PDF, JPG, PNG")
}

func TestRecordsPage_AddAndDelete(t *testing.T) {
	var added models.InstitutionRecord
	var deleted int64
	client := &mocks.FakeClient{
		AddRecordFn: func(_ context.Context, rec models.InstitutionRecord) (*models.InstitutionRecord, error) {
			added = rec
			rec.ID = 7
			return &rec, nil
		},
		DeleteRecordFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	// add: name, id number, one metadata pair, blank line; delete: confirm.
	a, out := newTestApp(t, client, "Jane Roe\nID-123\ndegree=BSc\n\ny\n")
	loginAs(t, a, client, models.RoleInstitution)

	require.NoError(t, a.Records(context.Background(), []string{"add"}))
	require.Equal(t, "Jane Roe", added.Name)
	require.Equal(t, "ID-123", added.IDNumber)
	require.Equal(t, map[string]string{"degree": "BSc"}, added.Metadata)
	require.Contains(t, out.String(), "Record 7 added")

	require.NoError(t, a.Records(context.Background(), []string{"delete", "7"}))
	require.Equal(t, int64(7), deleted)
	require.Contains(t, out.String(), "Record 7 deleted")
}
