package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/adapter/kvs"
	"github.com/modwatch-lab/tattler/pkg/adapter/transport"
	"github.com/modwatch-lab/tattler/pkg/cli/config"
	server "github.com/modwatch-lab/tattler/pkg/controller/http"
	"github.com/modwatch-lab/tattler/pkg/repository"
	"github.com/modwatch-lab/tattler/pkg/service/classifier"
	"github.com/modwatch-lab/tattler/pkg/service/modnote"
	"github.com/modwatch-lab/tattler/pkg/service/notify"
	"github.com/modwatch-lab/tattler/pkg/usecase"
	"github.com/modwatch-lab/tattler/pkg/utils/logging"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		addr            string
		refreshSchedule string
		sentryCfg       config.Sentry
		redditCfg       config.Reddit
		storeCfg        config.Store
		settingsCfg     config.Settings
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("TATTLER_ADDR"),
				Usage:       "Listen address (default: 127.0.0.1:8080)",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.StringFlag{
				Name:        "roster-refresh-schedule",
				Sources:     cli.EnvVars("TATTLER_ROSTER_REFRESH_SCHEDULE"),
				Usage:       "Cron spec for periodic roster re-cache",
				Value:       "@every 6h",
				Destination: &refreshSchedule,
			},
		},
		sentryCfg.Flags(),
		redditCfg.Flags(),
		storeCfg.Flags(),
		settingsCfg.Flags(),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the trigger receiver",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("starting tattler",
				"addr", addr,
				"reddit", redditCfg,
				"store", storeCfg,
				"settings", settingsCfg,
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			settingsProvider, err := settingsCfg.Configure()
			if err != nil {
				return err
			}

			store, closeStore, err := storeCfg.Configure()
			if err != nil {
				return err
			}
			defer closeStore()

			redditClient, err := redditCfg.Configure(ctx)
			if err != nil {
				return err
			}

			roster := repository.NewRoster(store, redditClient, redditCfg.Subreddit())
			snapshots := repository.NewSnapshots(store)

			uc := usecase.New(
				usecase.WithSettings(settingsProvider),
				usecase.WithRoster(roster),
				usecase.WithSnapshots(snapshots),
				usecase.WithClassifier(classifier.New(roster, snapshots, redditClient)),
				usecase.WithDispatcher(notify.NewDispatcher(
					notify.NewModmail(redditClient),
					notify.NewSlack(transport.New()),
					notify.NewDiscord(transport.New()),
				)),
				usecase.WithModNotes(modnote.New(redditClient)),
			)

			// Seed the roster so the first mod action can be classified.
			if err := uc.RefreshRoster(ctx); err != nil {
				logger.Warn("initial roster refresh failed", logging.ErrAttr(err))
			}

			scheduler := cron.New()
			if _, err := scheduler.AddFunc(refreshSchedule, func() {
				if err := uc.RefreshRoster(context.Background()); err != nil {
					logger.Warn("scheduled roster refresh failed", logging.ErrAttr(err))
				}
			}); err != nil {
				return goerr.Wrap(err, "invalid roster refresh schedule",
					goerr.V("schedule", refreshSchedule))
			}
			if sqlite, ok := store.(*kvs.SQLite); ok {
				if _, err := scheduler.AddFunc("@daily", func() {
					if n, err := sqlite.Cleanup(context.Background()); err != nil {
						logger.Warn("store cleanup failed", logging.ErrAttr(err))
					} else if n > 0 {
						logger.Info("removed expired snapshots", "count", n)
					}
				}); err != nil {
					return goerr.Wrap(err, "failed to schedule store cleanup")
				}
			}
			scheduler.Start()
			defer scheduler.Stop()

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.New(uc),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "server error")
				}
			}()

			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-errCh:
				return err
			case <-sigCtx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
				return nil
			}
		},
	}
}
