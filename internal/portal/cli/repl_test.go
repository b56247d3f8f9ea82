package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login", nil)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.record("register", nil)
	return nil
}
func (f *fakeExec) RegisterAdmin(ctx context.Context) error {
	f.record("register-admin", nil)
	return nil
}
func (f *fakeExec) Dashboard(ctx context.Context) error {
	f.record("dashboard", nil)
	return nil
}
func (f *fakeExec) Upload(ctx context.Context, args []string) error {
	f.record("upload", args)
	return nil
}
func (f *fakeExec) History(ctx context.Context, args []string) error {
	f.record("history", args)
	return nil
}
func (f *fakeExec) Results(ctx context.Context, args []string) error {
	f.record("results", args)
	return nil
}
func (f *fakeExec) Report(ctx context.Context, args []string) error {
	f.record("report", args)
	return nil
}
func (f *fakeExec) Records(ctx context.Context, args []string) error {
	f.record("records", args)
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout", nil)
	f.loggedIn = false
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"dashboard",
		"upload scan.pdf",
		"history filter fake",
		"results 42",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "dashboard", "upload", "history", "results", "logout"}
	if len(exec.calls) != len(wantOrder) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, wantOrder)
	}
	for i, c := range exec.calls {
		if c != wantOrder[i] {
			t.Fatalf("commands order mismatch: got %v, want %v", exec.calls, wantOrder)
		}
	}
}

func TestRunREPL_ArgsPassedThrough(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("history filter fake\nreport 7 out.pdf\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.args) != 2 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if got := strings.Join(exec.args[0], " "); got != "filter fake" {
		t.Fatalf("history args: got %q", got)
	}
	if got := strings.Join(exec.args[1], " "); got != "7 out.pdf" {
		t.Fatalf("report args: got %q", got)
	}
}

func TestRunREPL_ShortAliases(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("d\nh\nr 1\nu a.png\nexit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"dashboard", "history", "results", "upload"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
}
