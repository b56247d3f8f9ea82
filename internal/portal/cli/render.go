package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/veridoc/portal/internal/common"
	"github.com/veridoc/portal/internal/portal/models"
)

// verdictLabel renders a verdict the way the results page shows it.
func verdictLabel(v models.Verdict) string {
	switch v {
	case models.VerdictAuthentic:
		return "AUTHENTIC ✓"
	case models.VerdictSuspicious:
		return "SUSPICIOUS ⚠"
	case models.VerdictFake:
		return "FAKE ✗"
	}
	return string(v)
}

func renderAlert(w io.Writer, msg string) {
	fmt.Fprintln(w, "! "+msg)
}

func renderResult(w io.Writer, r *models.ValidationResult) {
	if r.Document != nil {
		fmt.Fprintf(w, "Document: %s (%s)\n", r.Document.Filename, common.FormatFileSize(r.Document.FileSize))
	}
	fmt.Fprintf(w, "Verdict:  %s\n", verdictLabel(r.Verdict))
	fmt.Fprintf(w, "Score:    %s\n", common.FormatScore(r.Scores.FinalScore))
	if !r.ValidatedAt.IsZero() {
		fmt.Fprintf(w, "Validated: %s\n", common.FormatDate(r.ValidatedAt))
	}

	fmt.Fprintln(w, "\nScore breakdown:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Visual analysis\t%s\n", common.FormatScore(r.Scores.CNNScore))
	fmt.Fprintf(tw, "  Text extraction\t%s\n", common.FormatScore(r.Scores.OCRConfidence))
	fmt.Fprintf(tw, "  Registry match\t%s\n", common.FormatScore(r.Scores.DBMatchScore))
	tw.Flush()

	if len(r.ExtractedData) > 0 {
		fmt.Fprintln(w, "\nExtracted data:")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, k := range sortedKeys(r.ExtractedData) {
			mark := ""
			if matched, ok := r.FieldMatches[k]; ok {
				if matched {
					mark = "✓"
				} else {
					mark = "✗"
				}
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", k, r.ExtractedData[k], mark)
		}
		tw.Flush()
	}
}

func renderHistoryPage(w io.Writer, items []models.ValidationResult, pag models.Pagination, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILE\tVERDICT\tSCORE\tVALIDATED")
	for _, r := range items {
		name := ""
		if r.Document != nil {
			name = r.Document.Filename
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			r.DocumentID, name, r.Verdict, common.FormatScore(r.Scores.FinalScore), common.FormatDate(r.ValidatedAt))
	}
	tw.Flush()
	fmt.Fprintf(w, "Page %d of %d (%d total)\n", pag.Page, pag.Pages, pag.Total)
}

func renderRecords(w io.Writer, items []models.InstitutionRecord, pag models.Pagination) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No records yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tID NUMBER")
	for _, rec := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", rec.ID, rec.Name, rec.IDNumber)
	}
	tw.Flush()
	fmt.Fprintf(w, "Page %d of %d (%d total)\n", pag.Page, pag.Pages, pag.Total)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
