package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/adapter/reddit"
	"github.com/urfave/cli/v3"
)

type Reddit struct {
	clientID     string
	clientSecret string
	username     string
	password     string
	userAgent    string
	subreddit    string
}

func (x *Reddit) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "reddit-client-id",
			Usage:       "Reddit API client ID",
			Category:    "Reddit",
			Sources:     cli.EnvVars("TATTLER_REDDIT_CLIENT_ID"),
			Destination: &x.clientID,
		},
		&cli.StringFlag{
			Name:        "reddit-client-secret",
			Usage:       "Reddit API client secret",
			Category:    "Reddit",
			Sources:     cli.EnvVars("TATTLER_REDDIT_CLIENT_SECRET"),
			Destination: &x.clientSecret,
		},
		&cli.StringFlag{
			Name:        "reddit-username",
			Usage:       "Reddit account username (script app)",
			Category:    "Reddit",
			Sources:     cli.EnvVars("TATTLER_REDDIT_USERNAME"),
			Destination: &x.username,
		},
		&cli.StringFlag{
			Name:        "reddit-password",
			Usage:       "Reddit account password (script app)",
			Category:    "Reddit",
			Sources:     cli.EnvVars("TATTLER_REDDIT_PASSWORD"),
			Destination: &x.password,
		},
		&cli.StringFlag{
			Name:        "reddit-user-agent",
			Usage:       "User-Agent header for API requests",
			Category:    "Reddit",
			Sources:     cli.EnvVars("TATTLER_REDDIT_USER_AGENT"),
			Destination: &x.userAgent,
		},
		&cli.StringFlag{
			Name:        "subreddit",
			Aliases:     []string{"r"},
			Usage:       "Community this process serves",
			Category:    "Reddit",
			Sources:     cli.EnvVars("TATTLER_SUBREDDIT"),
			Destination: &x.subreddit,
		},
	}
}

func (x Reddit) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("client-id", x.clientID),
		slog.Int("client-secret.len", len(x.clientSecret)),
		slog.String("username", x.username),
		slog.String("subreddit", x.subreddit),
	)
}

func (x *Reddit) Subreddit() string {
	return x.subreddit
}

func (x *Reddit) Configure(ctx context.Context) (*reddit.Client, error) {
	if x.subreddit == "" {
		return nil, goerr.New("subreddit is not set")
	}

	return reddit.New(ctx, reddit.Config{
		ClientID:     x.clientID,
		ClientSecret: x.clientSecret,
		Username:     x.username,
		Password:     x.password,
		UserAgent:    x.userAgent,
	})
}
