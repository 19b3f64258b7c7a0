package notify_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/modwatch-lab/tattler/pkg/domain/model/alert"
	"github.com/modwatch-lab/tattler/pkg/domain/model/settings"
	"github.com/modwatch-lab/tattler/pkg/domain/types"
	"github.com/modwatch-lab/tattler/pkg/service/notify"
)

type fakeModmail struct {
	err      error
	subjects []string
	bodies   []string
}

func (x *fakeModmail) SendModmail(ctx context.Context, subreddit, subject, body string) error {
	if x.err != nil {
		return x.err
	}
	x.subjects = append(x.subjects, subject)
	x.bodies = append(x.bodies, body)
	return nil
}

type fakeTransport struct {
	err      error
	urls     []string
	payloads [][]byte
}

func (x *fakeTransport) Post(ctx context.Context, url string, payload []byte) error {
	if x.err != nil {
		return x.err
	}
	x.urls = append(x.urls, url)
	x.payloads = append(x.payloads, payload)
	return nil
}

func sampleRecord() *alert.Record {
	return &alert.Record{
		Action:      types.ActionRemoveLink,
		Actor:       types.AntiEvilOperations,
		DisplayName: types.AntiEvilOperations,
		Subreddit:   "golang",
		Permalink:   "https://www.reddit.com/r/golang/comments/abc123/help_needed/",
		TargetID:    types.ContentID("t3_abc123"),
		TargetUser:  "bob",
		Banned:      true,
		URL:         alert.Field{Value: "http://example.com/x"},
		Title:       alert.Field{Value: "Help needed", Cached: true},
		Body:        alert.Field{Value: "please help", Cached: true},
	}
}

func TestModmail(t *testing.T) {
	ctx := context.Background()

	t.Run("renders every populated field in order", func(t *testing.T) {
		sender := &fakeModmail{}
		ch := notify.NewModmail(sender)
		gt.NoError(t, ch.Send(ctx, sampleRecord(), &settings.Settings{SendModmail: true}))

		gt.A(t, sender.bodies).Length(1)
		body := sender.bodies[0]
		gt.Value(t, sender.subjects[0]).Equal("Admin Action Detected")

		gt.S(t, body).Contains("**Anti-Evil Operations** has performed an action in r/golang")
		gt.S(t, body).Contains("* **Action:** `removelink`")
		gt.S(t, body).Contains("* **Permalink:** https://www.reddit.com/r/golang/comments/abc123/help_needed/")
		gt.S(t, body).Contains("* **Target User:** u/bob (Banned)")
		gt.S(t, body).Contains("* **URL:** http://example.com/x")
		gt.S(t, body).Contains("* **Title (Cached):** Help needed")
		gt.S(t, body).Contains("* **Body (Cached):**")
		gt.S(t, body).Contains("\n >please help")
		gt.S(t, body).Contains("[**View Admin Modlog**](https://www.reddit.com/mod/golang/log?moderatorNames=a)")
		gt.S(t, body).Contains("^(Notification generated by )[^Tattler](https://github.com/modwatch-lab/tattler)^(.)")

		gt.Number(t, strings.Index(body, "**Permalink:**")).Less(strings.Index(body, "**Target User:**"))
		gt.Number(t, strings.Index(body, "**Target User:**")).Less(strings.Index(body, "**URL"))
	})

	t.Run("exclude-context suppresses title and body but not URL", func(t *testing.T) {
		sender := &fakeModmail{}
		ch := notify.NewModmail(sender)
		gt.NoError(t, ch.Send(ctx, sampleRecord(), &settings.Settings{SendModmail: true, ExcludeContext: true}))

		body := sender.bodies[0]
		gt.False(t, strings.Contains(body, "Title"))
		gt.False(t, strings.Contains(body, "please help"))
		gt.S(t, body).Contains("* **URL:** http://example.com/x")
	})

	t.Run("body is truncated to the channel budget", func(t *testing.T) {
		sender := &fakeModmail{}
		ch := notify.NewModmail(sender)
		rec := sampleRecord()
		rec.Body = alert.Field{Value: strings.Repeat("ξ", 20000)}
		gt.NoError(t, ch.Send(ctx, rec, &settings.Settings{SendModmail: true}))

		gt.Number(t, strings.Count(sender.bodies[0], "ξ")).LessOrEqual(9000)
		gt.S(t, sender.bodies[0]).Contains("…")
	})

	t.Run("active only when modmail is enabled", func(t *testing.T) {
		ch := notify.NewModmail(&fakeModmail{})
		gt.True(t, ch.Active(&settings.Settings{SendModmail: true}))
		gt.False(t, ch.Active(&settings.Settings{WebhookURL: settings.SlackWebhookPrefix + "x"}))
	})
}

func TestSlack(t *testing.T) {
	ctx := context.Background()
	slackURL := "https://hooks.slack.com/services/T0/B0/xyz"

	t.Run("posts a block payload to the configured webhook", func(t *testing.T) {
		transport := &fakeTransport{}
		ch := notify.NewSlack(transport)
		gt.NoError(t, ch.Send(ctx, sampleRecord(), &settings.Settings{WebhookURL: slackURL}))

		gt.A(t, transport.urls).Length(1)
		gt.Value(t, transport.urls[0]).Equal(slackURL)

		payload := string(transport.payloads[0])
		gt.S(t, payload).Contains("*Anti-Evil Operations* has performed an action in r/golang")
		gt.S(t, payload).Contains("*Action:* `removelink`")
		gt.S(t, payload).Contains("*Title (Cached):* Help needed")
		gt.S(t, payload).Contains("<https://www.reddit.com/user/bob|u/bob (Banned)>")
		gt.S(t, payload).Contains("View Admin Modlog")
		gt.S(t, payload).Contains("#FF4500")
	})

	t.Run("body is truncated to the channel budget", func(t *testing.T) {
		transport := &fakeTransport{}
		ch := notify.NewSlack(transport)
		rec := sampleRecord()
		rec.Body = alert.Field{Value: strings.Repeat("ξ", 10000)}
		gt.NoError(t, ch.Send(ctx, rec, &settings.Settings{WebhookURL: slackURL}))

		gt.Number(t, strings.Count(string(transport.payloads[0]), "ξ")).LessOrEqual(2500)
	})

	t.Run("exclude-context suppresses title and body but not URL", func(t *testing.T) {
		transport := &fakeTransport{}
		ch := notify.NewSlack(transport)
		gt.NoError(t, ch.Send(ctx, sampleRecord(), &settings.Settings{WebhookURL: slackURL, ExcludeContext: true}))

		payload := string(transport.payloads[0])
		gt.False(t, strings.Contains(payload, "Help needed"))
		gt.False(t, strings.Contains(payload, "please help"))
		gt.S(t, payload).Contains("*Action:* `removelink`")
		gt.S(t, payload).Contains("*Permalink:*")
		gt.S(t, payload).Contains("u/bob (Banned)")
		gt.S(t, payload).Contains("*URL:* http://example.com/x")
	})

	t.Run("active only for slack-family URLs", func(t *testing.T) {
		ch := notify.NewSlack(&fakeTransport{})
		gt.True(t, ch.Active(&settings.Settings{WebhookURL: slackURL}))
		gt.False(t, ch.Active(&settings.Settings{WebhookURL: "https://discord.com/api/webhooks/1/t"}))
		gt.False(t, ch.Active(&settings.Settings{SendModmail: true}))
	})
}

func TestDiscord(t *testing.T) {
	ctx := context.Background()
	discordURL := "https://discord.com/api/webhooks/123/token"

	t.Run("posts an embed payload to the configured webhook", func(t *testing.T) {
		transport := &fakeTransport{}
		ch := notify.NewDiscord(transport)
		gt.NoError(t, ch.Send(ctx, sampleRecord(), &settings.Settings{WebhookURL: discordURL}))

		gt.A(t, transport.urls).Length(1)
		gt.Value(t, transport.urls[0]).Equal(discordURL)

		var params discordgo.WebhookParams
		gt.NoError(t, json.Unmarshal(transport.payloads[0], &params))
		gt.Value(t, params.Username).Equal("Tattler")
		gt.S(t, params.Content).Contains("**Anti-Evil Operations** has performed an action in r/golang")
		gt.A(t, params.Embeds).Length(1)

		fields := map[string]string{}
		for _, f := range params.Embeds[0].Fields {
			fields[f.Name] = f.Value
		}
		gt.Value(t, fields["Action"]).Equal("`removelink`")
		gt.Value(t, fields["Target User"]).Equal("[u/bob (Banned)](https://www.reddit.com/user/bob)")
		gt.Value(t, fields["Title (Cached)"]).Equal("Help needed")
		gt.Value(t, fields["View Admin Modlog"]).Equal("[Link](https://www.reddit.com/mod/golang/log?moderatorNames=a)")
	})

	t.Run("body is truncated to the embed field limit", func(t *testing.T) {
		transport := &fakeTransport{}
		ch := notify.NewDiscord(transport)
		rec := sampleRecord()
		rec.Body = alert.Field{Value: strings.Repeat("c", 5000)}
		gt.NoError(t, ch.Send(ctx, rec, &settings.Settings{WebhookURL: discordURL}))

		var params discordgo.WebhookParams
		gt.NoError(t, json.Unmarshal(transport.payloads[0], &params))
		for _, f := range params.Embeds[0].Fields {
			if strings.HasPrefix(f.Name, "Body") {
				gt.Number(t, utf8.RuneCountInString(f.Value)).LessOrEqual(1024)
			}
		}
	})

	t.Run("exclude-context suppresses title and body but not URL", func(t *testing.T) {
		transport := &fakeTransport{}
		ch := notify.NewDiscord(transport)
		gt.NoError(t, ch.Send(ctx, sampleRecord(), &settings.Settings{WebhookURL: discordURL, ExcludeContext: true}))

		var params discordgo.WebhookParams
		gt.NoError(t, json.Unmarshal(transport.payloads[0], &params))
		fields := map[string]string{}
		for _, f := range params.Embeds[0].Fields {
			fields[f.Name] = f.Value
		}
		_, hasTitle := fields["Title (Cached)"]
		gt.False(t, hasTitle)
		_, hasBody := fields["Body (Cached)"]
		gt.False(t, hasBody)
		gt.Value(t, fields["Action"]).Equal("`removelink`")
		gt.Value(t, fields["Permalink"]).Equal(sampleRecord().Permalink)
		gt.Value(t, fields["URL"]).Equal("http://example.com/x")
	})

	t.Run("active only for discord-family URLs", func(t *testing.T) {
		ch := notify.NewDiscord(&fakeTransport{})
		gt.True(t, ch.Active(&settings.Settings{WebhookURL: discordURL}))
		gt.False(t, ch.Active(&settings.Settings{WebhookURL: "https://hooks.slack.com/services/x"}))
	})
}

type recordingChannel struct {
	name   string
	active bool
	err    error
	sends  int
}

func (x *recordingChannel) Name() string { return x.name }

func (x *recordingChannel) Active(s *settings.Settings) bool { return x.active }

func (x *recordingChannel) Send(ctx context.Context, rec *alert.Record, s *settings.Settings) error {
	x.sends++
	return x.err
}

func TestDispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("fans out to every active channel", func(t *testing.T) {
		a := &recordingChannel{name: "a", active: true}
		b := &recordingChannel{name: "b", active: true}
		c := &recordingChannel{name: "c"}

		notify.NewDispatcher(a, b, c).Dispatch(ctx, sampleRecord(), &settings.Settings{SendModmail: true})
		gt.Value(t, a.sends).Equal(1)
		gt.Value(t, b.sends).Equal(1)
		gt.Value(t, c.sends).Equal(0)
	})

	t.Run("one channel failing never blocks the others", func(t *testing.T) {
		broken := &recordingChannel{name: "broken", active: true, err: goerr.New("webhook rejected")}
		healthy := &recordingChannel{name: "healthy", active: true}

		notify.NewDispatcher(broken, healthy).Dispatch(ctx, sampleRecord(), &settings.Settings{SendModmail: true})
		gt.Value(t, broken.sends).Equal(1)
		gt.Value(t, healthy.sends).Equal(1)
	})

	t.Run("unknown webhook family activates no webhook channel", func(t *testing.T) {
		transport := &fakeTransport{}
		dispatcher := notify.NewDispatcher(
			notify.NewSlack(transport),
			notify.NewDiscord(transport),
		)
		dispatcher.Dispatch(ctx, sampleRecord(), &settings.Settings{WebhookURL: "https://example.com/hook"})
		gt.A(t, transport.urls).Length(0)
	})
}
