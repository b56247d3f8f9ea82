package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	RegisterAdmin(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Results(ctx context.Context, args []string) error
	Report(ctx context.Context, args []string) error
	Records(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the validation portal.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             — show available commands
//	  - register         — create an account
//	  - register-admin   — create an administrator account
//	  - login            — authenticate
//	  - exit | quit      — leave the program
//
//	Logged in:
//	  - help             — show available commands
//	  - dashboard        — role-specific overview
//	  - upload <path>    — select, check and submit a document
//	  - history [...]    — validation history with filter/search/page
//	  - results <id>     — validation result for a document
//	  - report <id> [f]  — download the PDF report
//	  - records [...]    — institution registry management
//	  - logout           — log out
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own user-facing messages. This keeps the REPL loop resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("portal %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, upload <path>, history, results <id>, report <id>, records, logout, exit")
			} else {
				printlnFn("Available commands: register, register-admin, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "register-admin":
			_ = a.RegisterAdmin(ctx)

		case "login":
			_ = a.Login(ctx)

		case "dashboard", "d":
			_ = a.Dashboard(ctx)

		case "upload", "u":
			_ = a.Upload(ctx, args)

		case "history", "h":
			_ = a.History(ctx, args)

		case "results", "r":
			_ = a.Results(ctx, args)

		case "report":
			_ = a.Report(ctx, args)

		case "records":
			_ = a.Records(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
