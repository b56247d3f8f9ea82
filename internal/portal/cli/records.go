package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/veridoc/portal/internal/portal/api"
	"github.com/veridoc/portal/internal/portal/models"
)

// Records manages the institution's verification registry.
//
//	records              — list records (current page)
//	records page <n>     — go to page n
//	records add          — interactive add
//	records bulk <file>  — bulk import from a JSON array
//	records delete <id>  — remove a record
func (a *App) Records(ctx context.Context, args []string) error {
	if !a.guardPage(models.RoleInstitution) {
		return nil
	}

	if len(args) == 0 {
		return a.listRecords(ctx, func(c context.Context) error { return a.records.Load(c) })
	}

	switch args[0] {
	case "page":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: records page <n>")
			return nil
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: records page <n>")
			return nil
		}
		return a.listRecords(ctx, func(c context.Context) error { return a.records.SetPage(c, n) })

	case "add":
		return a.addRecord(ctx)

	case "bulk":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: records bulk <file>")
			return nil
		}
		return a.bulkAddRecords(ctx, args[1])

	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: records delete <id>")
			return nil
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "Usage: records delete <id>")
			return nil
		}
		return a.deleteRecord(ctx, id)

	default:
		fmt.Fprintln(a.out, "Usage: records [page <n> | add | bulk <file> | delete <id>]")
		return nil
	}
}

func (a *App) listRecords(ctx context.Context, reload func(context.Context) error) error {
	if err := reload(ctx); err != nil {
		renderAlert(a.out, a.records.Err())
		return err
	}
	renderRecords(a.out, a.records.Items(), a.records.Pagination())
	return nil
}

func (a *App) addRecord(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Record name", a.out)
	if err != nil {
		return err
	}
	idNumber, err := getSimpleText(a.reader, "ID number", a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(idNumber) == "" {
		renderAlert(a.out, "Name and ID number are required")
		return nil
	}
	metadata, err := getMetadata(a.reader, a.out)
	if err != nil {
		return err
	}

	rec, err := a.client.AddRecord(ctx, models.InstitutionRecord{
		Name:     name,
		IDNumber: idNumber,
		Metadata: metadata,
	})
	if err != nil {
		renderAlert(a.out, api.UserMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Record %d added\n", rec.ID)
	return nil
}

func (a *App) bulkAddRecords(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		renderAlert(a.out, fmt.Sprintf("Cannot read %s: %v", path, err))
		return err
	}

	var recs []models.InstitutionRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		renderAlert(a.out, fmt.Sprintf("Invalid records file: %v", err))
		return err
	}
	if len(recs) == 0 {
		renderAlert(a.out, "Records file is empty")
		return nil
	}

	summary, err := a.client.BulkAddRecords(ctx, recs)
	if err != nil {
		renderAlert(a.out, api.UserMessage(err))
		return err
	}

	fmt.Fprintln(a.out, summary)
	return nil
}

func (a *App) deleteRecord(ctx context.Context, id int64) error {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete record %d? (y/n)", id), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.client.DeleteRecord(ctx, id); err != nil {
		renderAlert(a.out, api.UserMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Record %d deleted\n", id)
	return nil
}
