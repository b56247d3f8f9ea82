package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/veridoc/portal/internal/portal/models"
)

// History is the validation-history page. Subcommands mutate the listing
// state and refetch:
//
//	history                  — current page
//	history page <n>         — go to page n
//	history filter <verdict> — authentic | suspicious | fake | all
//	history search <term>    — filename search ("" clears)
func (a *App) History(ctx context.Context, args []string) error {
	if !a.guardPage() {
		return nil
	}

	var err error
	switch {
	case len(args) == 0:
		err = a.hist.Load(ctx)

	case args[0] == "page" && len(args) > 1:
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			fmt.Fprintln(a.out, "Usage: history page <n>")
			return nil
		}
		err = a.hist.SetPage(ctx, n)

	case args[0] == "filter" && len(args) > 1:
		verdict := models.Verdict(strings.ToUpper(args[1]))
		if strings.EqualFold(args[1], "all") {
			verdict = ""
		}
		err = a.hist.SetVerdict(ctx, verdict)

	case args[0] == "search":
		err = a.hist.SetSearch(ctx, strings.Join(args[1:], " "))

	default:
		fmt.Fprintln(a.out, "Usage: history [page <n> | filter <verdict|all> | search <term>]")
		return nil
	}

	if err != nil {
		renderAlert(a.out, a.hist.Err())
		return err
	}

	renderHistoryPage(a.out, a.hist.Items(), a.hist.Pagination(), a.hist.EmptyMessage())
	return nil
}
