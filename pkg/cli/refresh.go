package cli

import (
	"context"

	"github.com/modwatch-lab/tattler/pkg/cli/config"
	"github.com/modwatch-lab/tattler/pkg/repository"
	"github.com/modwatch-lab/tattler/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// cmdRefresh re-caches the moderator roster once, the same operation the
// install/upgrade lifecycle trigger performs.
func cmdRefresh() *cli.Command {
	var (
		redditCfg config.Reddit
		storeCfg  config.Store
	)

	return &cli.Command{
		Name:  "refresh",
		Usage: "Re-cache the moderator roster",
		Flags: joinFlags(redditCfg.Flags(), storeCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
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
			if err := roster.Refresh(ctx); err != nil {
				return err
			}

			logging.From(ctx).Info("Roster refreshed", "subreddit", redditCfg.Subreddit())
			return nil
		},
	}
}
