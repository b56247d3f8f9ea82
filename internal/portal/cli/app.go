// Package cli is the terminal front end of the validation portal: a REPL
// whose commands map onto the portal's pages, with the route guard deciding
// what the current session may open.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/veridoc/portal/internal/logging"
	"github.com/veridoc/portal/internal/portal/api"
	"github.com/veridoc/portal/internal/portal/guard"
	"github.com/veridoc/portal/internal/portal/history"
	"github.com/veridoc/portal/internal/portal/models"
	"github.com/veridoc/portal/internal/portal/request"
	"github.com/veridoc/portal/internal/portal/session"
	"github.com/veridoc/portal/internal/portal/upload"
)

// App wires the portal's services to the REPL commands. One instance per
// process; reader and out default to the process terminal and are swappable
// in tests.
type App struct {
	client  api.Client
	session *session.Service
	flow    *upload.Workflow
	hist    *history.Controller[models.ValidationResult]
	records *history.Controller[models.InstitutionRecord]
	req     *request.Requester
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(client api.Client, sess *session.Service, flow *upload.Workflow, log logging.Logger) *App {
	if log == nil {
		log = logging.Noop()
	}
	a := &App{
		client:  client,
		session: sess,
		flow:    flow,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	// The concrete HTTP client exposes the raw JSON primitive; fakes in
	// tests usually do not, and the requester only needs it for raw calls.
	doer, _ := client.(request.JSONDoer)
	a.req = request.New(doer, log)
	a.hist = history.NewController(client.History, log)
	a.records = history.NewController(func(ctx context.Context, q api.HistoryQuery) ([]models.InstitutionRecord, models.Pagination, error) {
		return client.ListRecords(ctx, q.Page, q.PerPage)
	}, log)
	return a
}

// Run restores the persisted session and enters the REPL until EOF, exit,
// or context cancellation.
func (a *App) Run(ctx context.Context) {
	a.session.Init(ctx)
	if st := a.session.Snapshot(); st.Authenticated {
		fmt.Fprintf(a.out, "Welcome back, %s\n", st.User.Name)
	}

	fmt.Fprintln(a.out, "Document verification portal (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated
}

func (a *App) getStatus() string {
	st := a.session.Snapshot()
	if st.Loading {
		return "(loading)"
	}
	if !st.Authenticated || st.User == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", st.User.Email, st.User.Role)
}

// guardPage runs the route guard for a page restricted to allowedRoles
// (none means any authenticated user) and reports whether the page may
// render. Redirect decisions print the same messages the portal shows.
func (a *App) guardPage(allowedRoles ...models.Role) bool {
	switch guard.Decide(a.session.Snapshot(), allowedRoles...) {
	case guard.Allow:
		return true
	case guard.ShowLoading:
		fmt.Fprintln(a.out, "Restoring session, try again in a moment")
	case guard.RedirectLogin:
		renderAlert(a.out, "Please log in to continue")
	case guard.RedirectDashboard:
		renderAlert(a.out, "You do not have access to this page")
	}
	return false
}
