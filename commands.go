package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"competition_backend/internals/configs"
	database "competition_backend/internals/databases"
	attendanceDTO "competition_backend/internals/features/attendance/dto"
	attendanceModel "competition_backend/internals/features/attendance/model"
	"competition_backend/internals/features/attendance/scheduler"
	attendanceService "competition_backend/internals/features/attendance/service"
	statsService "competition_backend/internals/features/statistics/service"
	helper "competition_backend/internals/helpers"
	"competition_backend/internals/logger"
	"competition_backend/internals/middlewares"
	routes "competition_backend/internals/route"
	"competition_backend/internals/seeds"
)

// app holds what every subcommand needs after PersistentPreRunE.
type app struct {
	cfg *configs.Config
	db  *gorm.DB
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "competition",
		Short:         "Competition attendance sync and zone statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configs.LoadEnv()
			cfg, err := configs.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel, cfg.AppEnv)
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			database.Close(a.db)
		},
	}

	serve := newServeCmd(a)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newSyncCmd(a), newZoneStatsCmd(a), newMigrateCmd(a), newSeedCmd(a))
	return root
}

func (a *app) connect() error {
	db, err := database.ConnectDB(a.cfg.DB)
	if err != nil {
		return err
	}
	a.db = db
	database.DB = db
	return nil
}

func (a *app) syncService() *attendanceService.SyncService {
	return attendanceService.NewSyncService(
		attendanceService.NewGormStore(a.db),
		attendanceService.WithTimeout(a.cfg.SyncTimeout),
		attendanceService.WithFetchConcurrency(a.cfg.SyncMemberFetchConcurrency),
	)
}

func (a *app) zoneStatsService(ttl time.Duration) *statsService.ZoneStatsService {
	return statsService.NewZoneStatsService(statsService.NewGormSource(a.db), ttl)
}

/* ===================== serve ===================== */

func newServeCmd(a *app) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the attendance cron",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run auto-migration before serving")
	return cmd
}

func (a *app) serve(migrate bool) error {
	log := logger.L()

	if err := a.connect(); err != nil {
		return err
	}
	database.TunePool(a.db)
	database.WarmUpQueries(a.db)
	if migrate {
		if err := database.Migrate(a.db); err != nil {
			return err
		}
	}

	syncSvc := a.syncService()
	statsSvc := a.zoneStatsService(a.cfg.ZoneStatsCacheTTL)

	fiberApp := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          a.cfg.SyncTimeout + 30*time.Second,
		IdleTimeout:           90 * time.Second,
	})
	middlewares.SetupMiddlewares(fiberApp, a.cfg)
	routes.SetupRoutes(fiberApp, routes.Deps{
		DB:        a.db,
		JWTSecret: a.cfg.JWTSecret,
		Sync:      syncSvc,
		ZoneStats: statsSvc,
	})

	// scheduler after DB is ready
	cronJob := scheduler.NewAttendanceScheduler(syncSvc, a.cfg.SyncTimeout)
	if _, err := cronJob.Start(a.cfg.AttendanceSyncCron); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("[SERVER] listening on :%s", a.cfg.Port)
		errCh <- fiberApp.Listen("0.0.0.0:" + a.cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("[SERVER] shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		log.WithError(err).Warn("[SERVER] shutdown")
	}
	cronJob.Stop(ctx)
	return nil
}

/* ===================== sync ===================== */

func newSyncCmd(a *app) *cobra.Command {
	var (
		eventID int
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync attendance for one event (defaults to the active event)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.connect(); err != nil {
				return err
			}
			svc := a.syncService()
			opts := attendanceService.SyncOptions{
				DryRun:      dryRun,
				Trigger:     attendanceModel.TriggerCLI,
				TriggeredBy: os.Getenv("USER"),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var (
				res *attendanceDTO.SyncResult
				err error
			)
			if cmd.Flags().Changed("event") {
				res, err = svc.Sync(ctx, eventID, opts)
			} else {
				res, err = svc.SyncActiveEvent(ctx, opts)
			}
			if err != nil {
				return err
			}
			logger.L().Info("[SYNC] " + res.Message())
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().IntVar(&eventID, "event", 0, "event id")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	return cmd
}

/* ===================== zone-stats ===================== */

func newZoneStatsCmd(a *app) *cobra.Command {
	var zoneID int
	cmd := &cobra.Command{
		Use:   "zone-stats",
		Short: "Print zone statistics for the active event as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.connect(); err != nil {
				return err
			}
			res, err := a.zoneStatsService(0).ComputeZoneStatistics(cmd.Context(), zoneID, statsService.StatsOptions{})
			if errors.Is(err, statsService.ErrInvalidZone) {
				return fmt.Errorf("--zone must be a positive integer: %w", err)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().IntVar(&zoneID, "zone", 0, "zone id")
	_ = cmd.MarkFlagRequired("zone")
	return cmd
}

/* ===================== migrate / seed ===================== */

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.connect(); err != nil {
				return err
			}
			if err := database.Migrate(a.db); err != nil {
				return err
			}
			logger.L().Info("[MIGRATE] done")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate and load the demo competition dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.connect(); err != nil {
				return err
			}
			if err := database.Migrate(a.db); err != nil {
				return err
			}
			if err := seeds.RunAllSeeds(a.db); err != nil {
				return err
			}
			logger.L().Info("[SEED] done")
			return nil
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
