package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/domain/model/alert"
	"github.com/modwatch-lab/tattler/pkg/domain/model/settings"
	"github.com/modwatch-lab/tattler/pkg/utils/truncate"
)

// modmailBodyLimit is the character budget for the body field in the
// internal-mail channel.
const modmailBodyLimit = 9000

const modmailSubject = "Admin Action Detected"

// Modmail reports through the community's internal mail.
type Modmail struct {
	sender interfaces.ModmailSender
}

func NewModmail(sender interfaces.ModmailSender) *Modmail {
	return &Modmail{sender: sender}
}

func (x *Modmail) Name() string {
	return "modmail"
}

func (x *Modmail) Active(s *settings.Settings) bool {
	return s.SendModmail
}

func (x *Modmail) Send(ctx context.Context, rec *alert.Record, s *settings.Settings) error {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** has performed an action in r/%s:\n\n", rec.ActorLabel(), rec.Subreddit)
	fmt.Fprintf(&b, "* **Action:** `%s`", rec.Action)

	if rec.Permalink != "" {
		fmt.Fprintf(&b, "\n\n* **Permalink:** %s", rec.Permalink)
	}
	if rec.ContentDate != "" {
		fmt.Fprintf(&b, "\n\n* **Content Date:** %s", rec.ContentDate)
	}
	if rec.TargetUser != "" {
		fmt.Fprintf(&b, "\n\n* **Target User:** %s", rec.TargetUserLabel())
	}
	if !rec.URL.Empty() {
		fmt.Fprintf(&b, "\n\n* **URL%s:** %s", cachedTag(rec.URL), rec.URL.Value)
	}
	if !s.ExcludeContext && !rec.Title.Empty() {
		fmt.Fprintf(&b, "\n\n* **Title%s:** %s", cachedTag(rec.Title), rec.Title.Value)
	}
	if !s.ExcludeContext && !rec.Body.Empty() {
		fmt.Fprintf(&b, "\n\n* **Body%s:** %s", cachedTag(rec.Body),
			quoteText(truncate.String(rec.Body.Value, modmailBodyLimit)))
	}

	fmt.Fprintf(&b, "\n\n[**%s**](%s)", rec.ModlogLabel(), rec.ModlogURL())
	fmt.Fprintf(&b, "\n\n^(Notification generated by )[^Tattler](https://github.com/modwatch-lab/tattler)^(.)")

	return x.sender.SendModmail(ctx, rec.Subreddit, modmailSubject, b.String())
}

// quoteText formats text as quoted markdown.
func quoteText(text string) string {
	return "\n >" + strings.ReplaceAll(text, "\n", "\n> ")
}
