package config

import (
	"log/slog"

	"github.com/modwatch-lab/tattler/pkg/domain/model/settings"
	"github.com/urfave/cli/v3"
)

// Settings maps the report configuration onto flags. Validation happens at
// startup and again per event, like the settings form it replaces.
type Settings struct {
	sendModmail    bool
	webhookURL     string
	excludeContext bool
	addModNote     bool
}

func (x *Settings) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "send-modmail",
			Usage:       "Send reports via modmail",
			Category:    "Reports",
			Sources:     cli.EnvVars("TATTLER_SEND_MODMAIL"),
			Value:       true,
			Destination: &x.sendModmail,
		},
		&cli.StringFlag{
			Name:        "webhook-url",
			Usage:       "Slack or Discord webhook URL for reports",
			Category:    "Reports",
			Sources:     cli.EnvVars("TATTLER_WEBHOOK_URL"),
			Destination: &x.webhookURL,
		},
		&cli.BoolFlag{
			Name:        "exclude-context",
			Usage:       "Exclude post/comment context from reports",
			Category:    "Reports",
			Sources:     cli.EnvVars("TATTLER_EXCLUDE_CONTEXT"),
			Destination: &x.excludeContext,
		},
		&cli.BoolFlag{
			Name:        "add-mod-note",
			Usage:       "Add a mod note to users actioned by admins",
			Category:    "Reports",
			Sources:     cli.EnvVars("TATTLER_ADD_MOD_NOTE"),
			Destination: &x.addModNote,
		},
	}
}

func (x Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("send-modmail", x.sendModmail),
		slog.Int("webhook-url.len", len(x.webhookURL)),
		slog.Bool("exclude-context", x.excludeContext),
		slog.Bool("add-mod-note", x.addModNote),
	)
}

func (x *Settings) Configure() (*settings.Static, error) {
	s := settings.Settings{
		SendModmail:    x.sendModmail,
		WebhookURL:     x.webhookURL,
		ExcludeContext: x.excludeContext,
		AddModNote:     x.addModNote,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return settings.NewStatic(s), nil
}
