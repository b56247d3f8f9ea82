package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/veridoc/portal/internal/common"
	"github.com/veridoc/portal/internal/portal/api"
)

// Results shows the validation result for one document.
//
//	results <id>             — fetch and render the result
//	results <id> revalidate  — run validation again, then render
func (a *App) Results(ctx context.Context, args []string) error {
	if !a.guardPage() {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: results <id> [revalidate]")
		return nil
	}
	docID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: results <id> [revalidate]")
		return nil
	}

	fetch := a.client.Results
	if len(args) > 1 && args[1] == "revalidate" {
		fetch = a.client.Revalidate
	}

	result, err := fetch(ctx, docID)
	if err != nil {
		if errors.Is(err, common.ErrNotValidated) {
			renderAlert(a.out, "This document has not been validated yet")
			return err
		}
		renderAlert(a.out, api.UserMessage(err))
		return err
	}

	renderResult(a.out, result)
	return nil
}

// Report downloads the PDF report for a validated document.
//
//	report <id> [file]  — default file is report_<id>.pdf
func (a *App) Report(ctx context.Context, args []string) error {
	if !a.guardPage() {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: report <id> [file]")
		return nil
	}
	docID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: report <id> [file]")
		return nil
	}

	path := fmt.Sprintf("report_%d.pdf", docID)
	if len(args) > 1 {
		path = args[1]
	}

	f, err := os.Create(path)
	if err != nil {
		renderAlert(a.out, fmt.Sprintf("Cannot write %s: %v", path, err))
		return err
	}

	if err := a.client.DownloadReport(ctx, docID, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		if errors.Is(err, common.ErrNotValidated) {
			renderAlert(a.out, "This document has not been validated yet")
			return err
		}
		renderAlert(a.out, api.UserMessage(err))
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Report saved to %s\n", path)
	return nil
}
