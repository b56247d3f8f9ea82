package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/veridoc/portal/internal/portal/models"
)

// Dashboard renders the role-specific overview. The switch over roles is
// exhaustive; an unknown role falls through to the regular user view.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.guardPage() {
		return nil
	}

	st := a.session.Snapshot()
	switch st.User.Role {
	case models.RoleAdmin:
		return a.adminDashboard(ctx)
	case models.RoleInstitution:
		return a.institutionDashboard(ctx)
	case models.RoleUser:
		return a.userDashboard(ctx)
	}
	return a.userDashboard(ctx)
}

func (a *App) userDashboard(ctx context.Context) error {
	st := a.session.Snapshot()
	fmt.Fprintf(a.out, "Dashboard — %s\n", st.User.Name)

	var (
		docs []models.Document
		pag  models.Pagination
	)
	err := a.req.Call(ctx, func(ctx context.Context) error {
		var err error
		docs, pag, err = a.client.ListDocuments(ctx, 1, 5)
		return err
	})
	if err != nil {
		renderAlert(a.out, a.req.Err())
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents yet. Use 'upload <path>' to validate your first document.")
		return nil
	}

	fmt.Fprintf(a.out, "Recent documents (%d total):\n", pag.Total)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, d := range docs {
		status := "pending"
		if d.HasResult {
			status = "validated"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", d.ID, d.Filename, status)
	}
	tw.Flush()
	return nil
}

func (a *App) adminDashboard(ctx context.Context) error {
	var (
		stats    *models.AdminStats
		activity []models.ActivityItem
	)
	err := a.req.Call(ctx, func(ctx context.Context) error {
		var err error
		if stats, err = a.client.AdminStats(ctx); err != nil {
			return err
		}
		activity, err = a.client.AdminActivity(ctx)
		return err
	})
	if err != nil {
		renderAlert(a.out, a.req.Err())
		return err
	}

	fmt.Fprintln(a.out, "Admin dashboard")
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Users\t%d\n", stats.Users)
	fmt.Fprintf(tw, "  Institutions\t%d\n", stats.Institutions)
	fmt.Fprintf(tw, "  Documents\t%d\n", stats.Documents)
	fmt.Fprintf(tw, "  Validations\t%d\n", stats.Validations)
	fmt.Fprintf(tw, "  Verdicts\t%d authentic / %d suspicious / %d fake\n",
		stats.Distribution.Authentic, stats.Distribution.Suspicious, stats.Distribution.Fake)
	tw.Flush()

	if len(activity) == 0 {
		return nil
	}

	fmt.Fprintln(a.out, "Recent activity:")
	tw = tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, item := range activity {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", item.DocumentID, item.Filename, item.Verdict, item.ValidatedAt)
	}
	tw.Flush()
	return nil
}

func (a *App) institutionDashboard(ctx context.Context) error {
	var stats *models.InstitutionStats
	err := a.req.Call(ctx, func(ctx context.Context) error {
		var err error
		stats, err = a.client.InstitutionStats(ctx)
		return err
	})
	if err != nil {
		renderAlert(a.out, a.req.Err())
		return err
	}

	fmt.Fprintln(a.out, "Institution dashboard")
	fmt.Fprintf(a.out, "  Registry records: %d\n", stats.TotalRecords)
	fmt.Fprintln(a.out, "Use 'records' to manage the registry.")
	return nil
}
