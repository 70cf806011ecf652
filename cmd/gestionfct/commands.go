package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/app"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/jobs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/lifecycle"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/query"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/seed"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/service"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
)

type command func(ctx context.Context, e *env, args []string) error

var commands = map[string]command{
	"migrate":       cmdMigrate,
	"seed":          cmdSeed,
	"serve":         cmdServe,
	"assign":        cmdAssign,
	"progress":      cmdProgress,
	"finalize":      cmdFinalize,
	"cancel":        cmdCancel,
	"list":          cmdList,
	"activate-year": cmdActivateYear,
	"export":        cmdExport,
	"attach":        cmdAttach,
}

func flags(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// requireID rejects a missing or non-positive id flag.
func requireID(field string, id int64) error {
	if id <= 0 {
		return errdefs.Validation(field, "is required")
	}
	return nil
}

func cmdMigrate(_ context.Context, e *env, _ []string) error {
	if e.sql == nil {
		fmt.Fprintln(e.out, "memory store: nothing to migrate")
		return nil
	}
	fmt.Fprintln(e.out, "migrations applied")
	return nil
}

func cmdSeed(ctx context.Context, e *env, _ []string) error {
	seeded, err := seed.Run(ctx, e.store, e.log)
	if err != nil {
		return err
	}
	if !seeded {
		fmt.Fprintln(e.out, "store already has data, nothing loaded")
		return nil
	}
	fmt.Fprintln(e.out, "demo data loaded; credentials:")
	for _, c := range seed.Credentials {
		fmt.Fprintf(e.out, "  %s / %s\n", c.Email, c.Password)
	}
	return nil
}

func cmdServe(ctx context.Context, e *env, args []string) error {
	fs := flags("serve")
	every := fs.Duration("gauge-interval", time.Minute, "how often to refresh assignment gauges")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var pinger store.Pinger
	if p, ok := e.store.(store.Pinger); ok && e.sql != nil {
		pinger = p
	}
	app.StartHTTP(ctx, e.cfg.HTTPAddr, pinger, e.log)

	runner := jobs.New(ctx, e.log)
	runner.Every(*every, "assignment_gauges", jobs.AssignmentGauges(e.store, e.now))

	fmt.Fprintf(e.out, "serving on %s\n", e.cfg.HTTPAddr)
	<-ctx.Done()
	return nil
}

func cmdAssign(ctx context.Context, e *env, args []string) error {
	fs := flags("assign")
	var req lifecycle.CreateRequest
	fs.Int64Var(&req.StudentID, "student", 0, "student id")
	fs.Int64Var(&req.CompanyID, "company", 0, "company id")
	fs.Int64Var(&req.TutorID, "tutor", 0, "company tutor id")
	fs.Int64Var(&req.PeriodID, "period", 0, "period id")
	fs.StringVar(&req.Notes, "notes", "", "initial notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := e.svc.CreateAssignment(ctx, req)
	if err != nil {
		return err
	}
	return printAssignment(e, a)
}

func cmdProgress(ctx context.Context, e *env, args []string) error {
	fs := flags("progress")
	id := fs.Int64("id", 0, "assignment id")
	hours := fs.Int("hours", 0, "hours completed so far")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("id", *id); err != nil {
		return err
	}
	a, err := e.svc.UpdateProgress(ctx, *id, *hours)
	if err != nil {
		return err
	}
	return printAssignment(e, a)
}

func cmdFinalize(ctx context.Context, e *env, args []string) error {
	fs := flags("finalize")
	id := fs.Int64("id", 0, "assignment id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("id", *id); err != nil {
		return err
	}
	a, err := e.svc.Finalize(ctx, *id)
	if err != nil {
		return err
	}
	return printAssignment(e, a)
}

func cmdCancel(ctx context.Context, e *env, args []string) error {
	fs := flags("cancel")
	id := fs.Int64("id", 0, "assignment id")
	reason := fs.String("reason", "", "why the placement is cancelled")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("id", *id); err != nil {
		return err
	}
	a, err := e.svc.Cancel(ctx, *id, *reason)
	if err != nil {
		return err
	}
	return printAssignment(e, a)
}

func listFilter(fs *flag.FlagSet) func() query.Filter {
	state := fs.String("state", "", "ACTIVE, FINALIZED or CANCELLED")
	year := fs.Int64("year", 0, "academic year id")
	student := fs.Int64("student", 0, "student id")
	company := fs.Int64("company", 0, "company id")
	search := fs.String("search", "", "student or company name")
	return func() query.Filter {
		return query.Filter{
			State:     models.AssignmentState(*state),
			YearID:    *year,
			StudentID: *student,
			CompanyID: *company,
			Search:    *search,
		}
	}
}

func cmdList(ctx context.Context, e *env, args []string) error {
	fs := flags("list")
	filter := listFilter(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	f := filter()
	if f.State != "" && !f.State.Valid() {
		return errdefs.Validation("state", fmt.Sprintf("unknown state %q", f.State))
	}
	rows, err := e.svc.AssignmentRows(ctx, f)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTUDENT\tCOMPANY\tTUTOR\tPERIOD\tSTATE\tHOURS\t%")
	for _, r := range rows {
		total := "-"
		if r.TotalHours != nil {
			total = fmt.Sprint(*r.TotalHours)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d/%s\t%.1f\n",
			r.ID, r.Student, r.Company, r.Tutor, r.Period, r.State, r.HoursCompleted, total, r.Percent)
	}
	return tw.Flush()
}

func cmdActivateYear(ctx context.Context, e *env, args []string) error {
	fs := flags("activate-year")
	id := fs.Int64("id", 0, "academic year id")
	name := fs.String("name", "", "academic year name, e.g. 2025-2026")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 && *name != "" {
		y, err := e.svc.YearByName(ctx, *name)
		if err != nil {
			return err
		}
		if y == nil {
			return errdefs.Validation("name", fmt.Sprintf("no academic year named %q", *name))
		}
		*id = y.ID
	}
	if err := requireID("id", *id); err != nil {
		return err
	}
	if err := e.svc.ActivateYear(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "academic year %d is now active\n", *id)
	return nil
}

func cmdExport(ctx context.Context, e *env, args []string) error {
	fs := flags("export")
	filter := listFilter(fs)
	dir := fs.String("dir", e.cfg.ExportDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := e.svc.ExportAssignments(ctx, *dir, filter())
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, path)
	return nil
}

func cmdAttach(ctx context.Context, e *env, args []string) error {
	fs := flags("attach")
	assignment := fs.Int64("assignment", 0, "assignment id")
	file := fs.String("file", "", "path of the uploaded file")
	typ := fs.String("type", string(models.DocAttachment), "ATTACHMENT, REPORT, EVALUATION or MEMOIR")
	desc := fs.String("description", "", "free text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("assignment", *assignment); err != nil {
		return err
	}
	info, err := os.Stat(*file)
	if err != nil {
		return errdefs.Validation("file", err.Error())
	}
	abs, err := filepath.Abs(*file)
	if err != nil {
		return errdefs.Validation("file", err.Error())
	}
	d, err := e.svc.AttachDocument(ctx, service.Upload{
		AssignmentID: *assignment,
		Name:         filepath.Base(*file),
		Path:         abs,
		Type:         models.DocumentType(*typ),
		ContentType:  mime.TypeByExtension(filepath.Ext(*file)),
		Size:         info.Size(),
		Description:  *desc,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "document %d (%s, %s) attached to assignment %d\n", d.ID, d.Name, d.FormattedSize(), d.AssignmentID)
	return nil
}

func printAssignment(e *env, a *models.Assignment) error {
	total := "-"
	if a.TotalHours != nil {
		total = fmt.Sprint(*a.TotalHours)
	}
	_, err := fmt.Fprintf(e.out, "assignment %d %s hours %d/%s (%.1f%%) %s..%s\n",
		a.ID, a.State, a.HoursCompleted, total, e.svc.PercentComplete(a),
		a.StartDate.Format("2006-01-02"), a.EndDate.Format("2006-01-02"))
	return err
}
