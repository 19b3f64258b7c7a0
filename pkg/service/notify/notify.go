package notify

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/model/alert"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/domain/model/settings"
	"github.com/modwatch-lab/tattler/pkg/utils/logging"
)

// Channel is one notification destination with its own formatting and size
// rules.
type Channel interface {
	Name() string
	Active(s *settings.Settings) bool
	Send(ctx context.Context, rec *alert.Record, s *settings.Settings) error
}

// Dispatcher fans one alert record out to every active channel. Sends are
// fire-and-forget: a channel failure is logged with channel context and
// never affects another channel. No retry, no redelivery.
type Dispatcher struct {
	channels []Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels}
}

func (x *Dispatcher) Dispatch(ctx context.Context, rec *alert.Record, s *settings.Settings) {
	logger := logging.From(ctx)

	active := 0
	for _, ch := range x.channels {
		if !ch.Active(s) {
			continue
		}
		active++
		if err := ch.Send(ctx, rec, s); err != nil {
			errs.Handle(ctx, goerr.Wrap(err, "failed to send report",
				goerr.T(errs.TagDelivery),
				goerr.V("channel", ch.Name()),
				goerr.V("action", rec.Action),
				goerr.V("actor", rec.Actor),
			))
			continue
		}
		logger.Info("Sent report", "channel", ch.Name(), "action", rec.Action, "actor", rec.Actor)
	}

	// A validated webhook URL always matches a family; an unvalidated one
	// that matches neither activates no webhook channel.
	if s.WebhookURL != "" && !s.SlackWebhook() && !s.DiscordWebhook() {
		logger.Warn("Webhook URL matches no known webhook family, skipping webhook delivery")
	}

	if active == 0 {
		logger.Warn("No active report channel", "action", rec.Action, "actor", rec.Actor)
	}
}

func cachedTag(f alert.Field) string {
	if f.Cached {
		return " (Cached)"
	}
	return ""
}
