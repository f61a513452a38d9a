package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"alcyxob/fitlocal/internal/export"
	"alcyxob/fitlocal/internal/service"
)

type MigrateCmd struct {
	Timeout time.Duration `help:"Give up after this long." default:"1m"`
}

func (c *MigrateCmd) Run(ctx *Context) error {
	backend, err := ctx.Backend()
	if err != nil {
		return err
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()
	if err := backend.Migrate(migrateCtx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx.printf("✓ %s schema is up to date\n", ctx.Config.Database.Driver)
	return nil
}

type ExportCmd struct {
	Out     string `help:"Output file. Defaults to fitlocal_log_<date>.xlsx in the working directory." type:"path"`
	Archive bool   `help:"Also upload the export to the configured S3 bucket and print a download link."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	background := context.Background()
	services, err := ctx.Services(background)
	if err != nil {
		return err
	}
	profile, err := services.Profiles.Get(background)
	if err != nil {
		return err
	}

	path := c.Out
	if path == "" {
		path = export.Filename(ctx.Clock())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := services.Export.Write(background, profile.ID, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.printf("✓ Workout log written to %s\n", path)

	if !c.Archive {
		return nil
	}
	archived, err := services.Export.Archive(background, profile.ID)
	if err != nil {
		return err
	}
	ctx.printf("✓ Archived as %s\n  %s\n", archived.ObjectKey, archived.DownloadURL)
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	background := context.Background()
	services, err := ctx.Services(background)
	if err != nil {
		return err
	}

	profile, err := services.Profiles.Get(background)
	if errors.Is(err, service.ErrProfileNotFound) {
		ctx.printf("No profile yet. Set one up with PUT /api/v1/profile.\n")
		return nil
	}
	if err != nil {
		return err
	}

	dashboard, err := services.Dashboard.Get(background, profile.ID)
	if err != nil {
		return err
	}

	ctx.printf("%s, %s %s\n", profile.Name, dashboard.Today, dashboard.Date.Format(time.DateOnly))
	ctx.printf("Streak: %d (longest %d)\n", dashboard.Streak.Current, dashboard.Streak.Longest)
	if dashboard.Streak.LastWorkout != nil {
		ctx.printf("Last workout: %s\n", dashboard.Streak.LastWorkout.Format(time.DateOnly))
	}
	ctx.printf("Sessions this week: %d\n", dashboard.DaysTrained)

	if dashboard.Progress == nil {
		ctx.printf("No active plan.\n")
	} else {
		ctx.printf("Plan: %s, week %d of %d\n", dashboard.PlanName, dashboard.Progress.Week, dashboard.Progress.Total)
		if phase := dashboard.Progress.Phase; phase != nil {
			ctx.printf("Phase: %s (%s)\n", phase.Name, phase.Type)
		}
		if dashboard.TodayWorkout != nil {
			ctx.printf("Today: %s\n", dashboard.TodayWorkout.Name)
		} else {
			ctx.printf("Today: rest day\n")
		}
	}
	if dashboard.HasPending {
		ctx.printf("A generated plan is waiting to be activated.\n")
	}

	retest, err := services.Fitness.Status(background, profile.ID)
	if err != nil {
		return err
	}
	if retest.Eligible {
		ctx.printf("Fitness test: due\n")
	} else {
		ctx.printf("Fitness test: in %d days\n", retest.DaysRemaining)
	}
	return nil
}
