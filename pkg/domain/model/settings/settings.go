package settings

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
)

const (
	SlackWebhookPrefix   = "https://hooks.slack.com/"
	DiscordWebhookPrefix = "https://discord.com/api/webhooks/"
)

// Settings is the per-community report configuration. It is read-only to the
// pipeline and loaded fresh for every event.
type Settings struct {
	SendModmail    bool
	WebhookURL     string
	ExcludeContext bool
	AddModNote     bool
}

// Validate enforces the two settings-entry rules: the webhook URL must be
// empty or belong to a known webhook family, and at least one reporting
// route must be enabled. A configuration with no route is an error, not a
// silent no-op.
func (x *Settings) Validate() error {
	if x.WebhookURL != "" && !x.SlackWebhook() && !x.DiscordWebhook() {
		return goerr.New("webhook URL must be a Slack or Discord webhook",
			goerr.T(errs.TagConfig))
	}
	if !x.SendModmail && x.WebhookURL == "" {
		return goerr.New("all reporting routes are disabled in app configuration",
			goerr.T(errs.TagConfig))
	}
	return nil
}

func (x *Settings) SlackWebhook() bool {
	return strings.HasPrefix(x.WebhookURL, SlackWebhookPrefix)
}

func (x *Settings) DiscordWebhook() bool {
	return strings.HasPrefix(x.WebhookURL, DiscordWebhookPrefix)
}

func (x Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("send-modmail", x.SendModmail),
		slog.Int("webhook-url.len", len(x.WebhookURL)),
		slog.Bool("exclude-context", x.ExcludeContext),
		slog.Bool("add-mod-note", x.AddModNote),
	)
}

// Static is a SettingsProvider that always returns the same settings, used
// when configuration comes from flags rather than a settings form.
type Static struct {
	settings Settings
}

func NewStatic(s Settings) *Static {
	return &Static{settings: s}
}

func (x *Static) GetAll(ctx context.Context) (*Settings, error) {
	s := x.settings
	return &s, nil
}
