// salonctl служебные команды салона: миграции, проверка слотов, архивация и выгрузка календаря
package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/m04kA/SMC-SalonBooking/internal/app"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/calendar"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	historyRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/history"
	appointmentsService "github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	appointmentsModels "github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	archiveAppointmentsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/archive_appointments"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/migrations"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

func main() {
	cliApp := &cli.App{
		Name:  "salonctl",
		Usage: "Maintenance commands for the salon booking service.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.toml", Usage: "Path to the TOML config file."},
			&cli.StringFlag{Name: "log-level", Value: "error", Usage: "Log level: debug, info, warn, error."},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			slotsCommand(),
			archiveCommand(),
			exportICSCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "salonctl: %v\n", err)
		os.Exit(1)
	}
}

// env общие зависимости команд
type env struct {
	cfg *config.Config
	log *logger.Logger
	db  *sql.DB
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Файл логов из конфига CLI не использует
	log, err := logger.New("", c.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := app.OpenDatabase(c.Context, cfg.Database)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) close() {
	e.db.Close()
	e.log.Close()
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations.",
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			migrator, err := app.NewMigrator(e.db, migrations.FS, e.log)
			if err != nil {
				return err
			}
			if err := migrator.Run(c.Context); err != nil {
				return err
			}

			version, err := migrator.Version(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "schema version %d\n", version)
			return nil
		},
	}
}

func slotsCommand() *cli.Command {
	return &cli.Command{
		Name:  "slots",
		Usage: "Print free start times for a service on a date.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Required: true, Usage: "Date in " + domain.DateFormat + " format."},
			&cli.StringFlag{Name: "category", Required: true, Usage: "Service category."},
			&cli.StringFlag{Name: "zones", Required: true, Usage: "Comma separated zones."},
		},
		Action: func(c *cli.Context) error {
			date, err := appointmentsModels.ParseDate(c.String("date"))
			if err != nil {
				return err
			}

			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			db := dbmetrics.Wrap(e.db, nil)
			uc := getAvailableSlotsUC.NewUseCase(
				appointmentRepo.NewRepository(db),
				catalogRepo.NewRepository(db),
				e.cfg.SlotSettings(),
				nil,
				e.log,
			)

			resp, err := uc.Execute(c.Context, &getAvailableSlotsUC.Request{
				Date:     date,
				Category: c.String("category"),
				Zones:    domain.SplitZones(c.String("zones")),
			})
			if err != nil {
				return err
			}

			return printSlots(c.App.Writer, resp)
		},
	}
}

func printSlots(w io.Writer, resp *getAvailableSlotsUC.Response) error {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	_, err := fmt.Fprintf(w, "%s %s (%s): %d min, $%d\n%s\n",
		resp.Date.Format(domain.DateFormat), resp.Category, domain.JoinZones(resp.Zones),
		resp.DurationMinutes, resp.Price, strings.Join(slots, " "))
	return err
}

func archiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Move completed (Realizado) appointments dated on or before the cutoff into history.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "before", Usage: "Cutoff date in " + domain.DateFormat + " format (default today)."},
		},
		Action: func(c *cli.Context) error {
			req := &archiveAppointmentsUC.Request{}
			if v := c.String("before"); v != "" {
				before, err := appointmentsModels.ParseDate(v)
				if err != nil {
					return err
				}
				req.Before = &before
			}

			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			db := dbmetrics.Wrap(e.db, nil)
			uc := archiveAppointmentsUC.NewUseCase(
				appointmentRepo.NewRepository(db),
				historyRepo.NewRepository(db),
				txmanager.NewTransactionManager(db),
				e.log,
			)

			resp, err := uc.Execute(c.Context, req)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "archived %d appointments up to %s\n",
				resp.Archived, resp.Before.Format(domain.DateFormat))
			return nil
		},
	}
}

func exportICSCommand() *cli.Command {
	return &cli.Command{
		Name:  "export-ics",
		Usage: "Write the agenda as an iCalendar file.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "First date in " + domain.DateFormat + " format (default today)."},
			&cli.StringFlag{Name: "to", Usage: "Last date in " + domain.DateFormat + " format."},
			&cli.StringFlag{Name: "out", Usage: "Output file, stdout when empty."},
			&cli.BoolFlag{Name: "all", Usage: "Include cancelled, no-show and completed appointments."},
		},
		Action: func(c *cli.Context) error {
			req := &appointmentsModels.ListRequest{All: c.Bool("all")}
			for name, target := range map[string]**time.Time{"from": &req.From, "to": &req.To} {
				v := c.String(name)
				if v == "" {
					continue
				}
				d, err := appointmentsModels.ParseDate(v)
				if err != nil {
					return fmt.Errorf("--%s: %w", name, err)
				}
				*target = &d
			}

			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			db := dbmetrics.Wrap(e.db, nil)
			svc := appointmentsService.NewService(
				appointmentRepo.NewRepository(db),
				clientRepo.NewRepository(db),
				historyRepo.NewRepository(db),
				calendar.NewEncoder(time.Now),
				e.cfg.Booking.AgendaDays,
				e.log,
			)

			var w io.Writer = c.App.Writer
			if out := c.String("out"); out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			count, err := svc.ExportICS(c.Context, w, req)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.ErrWriter, "exported %d events\n", count)
			return nil
		},
	}
}
