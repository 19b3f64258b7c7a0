package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/domain/model/alert"
	"github.com/modwatch-lab/tattler/pkg/domain/model/settings"
	"github.com/modwatch-lab/tattler/pkg/utils/truncate"
)

// discordBodyLimit is the character budget for the body field in the Discord
// channel. Matches Discord's own embed field value limit.
const discordBodyLimit = 1024

const (
	discordBotName   = "Tattler"
	discordAvatarURL = "https://raw.githubusercontent.com/modwatch-lab/tattler/main/assets/avatar.png"
	// #FF4500 (OrangeRed)
	discordEmbedColor = 16729344
)

// Discord delivers reports to a Discord webhook as an embed field list.
type Discord struct {
	transport interfaces.NotificationTransport
}

func NewDiscord(transport interfaces.NotificationTransport) *Discord {
	return &Discord{transport: transport}
}

func (x *Discord) Name() string {
	return "discord"
}

func (x *Discord) Active(s *settings.Settings) bool {
	return s.DiscordWebhook()
}

func (x *Discord) Send(ctx context.Context, rec *alert.Record, s *settings.Settings) error {
	embed := &discordgo.MessageEmbed{
		Color: discordEmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Action", Value: fmt.Sprintf("`%s`", rec.Action)},
		},
	}
	addField := func(name, value string) {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: name, Value: value})
	}

	if rec.Permalink != "" {
		addField("Permalink", rec.Permalink)
	}
	if rec.ContentDate != "" {
		addField("Content Date", rec.ContentDate)
	}
	if rec.TargetUser != "" {
		addField("Target User",
			fmt.Sprintf("[%s](https://www.reddit.com/user/%s)", rec.TargetUserLabel(), rec.TargetUser))
	}
	if !rec.URL.Empty() {
		addField("URL"+cachedTag(rec.URL), rec.URL.Value)
	}
	if !s.ExcludeContext && !rec.Title.Empty() {
		addField("Title"+cachedTag(rec.Title), rec.Title.Value)
	}
	if !s.ExcludeContext && !rec.Body.Empty() {
		addField("Body"+cachedTag(rec.Body), truncate.String(rec.Body.Value, discordBodyLimit))
	}
	addField(rec.ModlogLabel(), fmt.Sprintf("[Link](%s)", rec.ModlogURL()))

	params := discordgo.WebhookParams{
		Username:  discordBotName,
		AvatarURL: discordAvatarURL,
		Content:   fmt.Sprintf("**%s** has performed an action in r/%s", rec.ActorLabel(), rec.Subreddit),
		Embeds:    []*discordgo.MessageEmbed{embed},
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return goerr.Wrap(err, "failed to encode discord payload")
	}
	return x.transport.Post(ctx, s.WebhookURL, payload)
}
