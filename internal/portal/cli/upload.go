package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/veridoc/portal/internal/common"
)

// Upload drives the upload page: select and check the file, show the
// OCR preview when it arrives, confirm, then submit and validate.
func (a *App) Upload(ctx context.Context, args []string) error {
	if !a.guardPage() {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: upload <path>")
		return nil
	}

	if err := a.flow.Select(ctx, strings.Join(args, " ")); err != nil {
		renderAlert(a.out, a.flow.Err())
		return err
	}

	sel := a.flow.Selection()
	fmt.Fprintf(a.out, "Selected %s (%s, %s)\n", sel.Filename, sel.MIME, common.FormatFileSize(sel.Size))
	a.printPreview()

	answer, err := getSimpleText(a.reader, "Submit for validation? (y/n)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		a.flow.Reset()
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	result, err := a.flow.Run(ctx, func(pct int) {
		fmt.Fprintf(a.out, "\rUploading... %d%%", pct)
		if pct == 100 {
			fmt.Fprint(a.out, "\nValidating document...")
		}
	})
	fmt.Fprintln(a.out)
	if err != nil {
		renderAlert(a.out, a.flow.Err())
		return err
	}

	renderResult(a.out, result)
	return nil
}

// printPreview shows the extracted-fields panel if the preview has settled.
// A pending or failed preview never blocks submission.
func (a *App) printPreview() {
	st := a.flow.PreviewState()
	switch {
	case st.Pending:
		fmt.Fprintln(a.out, "Reading document fields in the background...")
	case st.Warning != "":
		fmt.Fprintln(a.out, st.Warning)
	case len(st.Fields) > 0:
		fmt.Fprintln(a.out, "Detected fields:")
		for _, k := range sortedKeys(st.Fields) {
			fmt.Fprintf(a.out, "  %s: %s\n", k, st.Fields[k])
		}
	}
}
