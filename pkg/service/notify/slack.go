package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/domain/model/alert"
	"github.com/modwatch-lab/tattler/pkg/domain/model/settings"
	"github.com/modwatch-lab/tattler/pkg/utils/truncate"
	"github.com/slack-go/slack"
)

// slackBodyLimit is the character budget for the body field in the Slack
// channel.
const slackBodyLimit = 2500

// accentColor is the attachment stripe (OrangeRed).
const accentColor = "#FF4500"

// Slack delivers reports to a Slack incoming webhook.
type Slack struct {
	transport interfaces.NotificationTransport
}

func NewSlack(transport interfaces.NotificationTransport) *Slack {
	return &Slack{transport: transport}
}

func (x *Slack) Name() string {
	return "slack"
}

func (x *Slack) Active(s *settings.Settings) bool {
	return s.SlackWebhook()
}

func (x *Slack) Send(ctx context.Context, rec *alert.Record, s *settings.Settings) error {
	var fields strings.Builder
	fmt.Fprintf(&fields, "*Action:* `%s`", rec.Action)
	if rec.Permalink != "" {
		fmt.Fprintf(&fields, "\n*Permalink:* %s", rec.Permalink)
	}
	if rec.ContentDate != "" {
		fmt.Fprintf(&fields, "\n*Content Date:* %s", rec.ContentDate)
	}
	if rec.TargetUser != "" {
		fmt.Fprintf(&fields, "\n*Target User:* <https://www.reddit.com/user/%s|%s>",
			rec.TargetUser, rec.TargetUserLabel())
	}
	if !rec.URL.Empty() {
		fmt.Fprintf(&fields, "\n*URL%s:* %s", cachedTag(rec.URL), rec.URL.Value)
	}
	if !s.ExcludeContext && !rec.Title.Empty() {
		fmt.Fprintf(&fields, "\n*Title%s:* %s", cachedTag(rec.Title), rec.Title.Value)
	}
	if !s.ExcludeContext && !rec.Body.Empty() {
		fmt.Fprintf(&fields, "\n*Body%s:* %s", cachedTag(rec.Body),
			truncate.String(rec.Body.Value, slackBodyLimit))
	}

	headline := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*%s* has performed an action in r/%s", rec.ActorLabel(), rec.Subreddit),
			false, false),
		nil, nil)

	modlogButton := slack.NewButtonBlockElement("", "",
		slack.NewTextBlockObject(slack.PlainTextType, rec.ModlogLabel(), false, false))
	modlogButton.URL = rec.ModlogURL()

	msg := slack.WebhookMessage{
		Blocks: &slack.Blocks{BlockSet: []slack.Block{headline}},
		Attachments: []slack.Attachment{{
			Color: accentColor,
			Blocks: slack.Blocks{BlockSet: []slack.Block{
				slack.NewContextBlock("",
					slack.NewTextBlockObject(slack.MarkdownType, fields.String(), false, false)),
				slack.NewActionBlock("", modlogButton),
			}},
		}},
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return goerr.Wrap(err, "failed to encode slack payload")
	}
	return x.transport.Post(ctx, s.WebhookURL, payload)
}
