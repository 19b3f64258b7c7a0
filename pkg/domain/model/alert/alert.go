package alert

import (
	"fmt"

	"github.com/modwatch-lab/tattler/pkg/domain/types"
)

// Field is a resolved content field with its provenance: whether the value
// came from the live event or was recovered from the snapshot cache.
type Field struct {
	Value  string
	Cached bool
}

func (x Field) Empty() bool {
	return x.Value == ""
}

// Record is the normalized view of one admin action. It exists only for the
// duration of processing a single event and is the sole input every
// notification channel renders from.
type Record struct {
	Action    types.ActionKind
	Actor     string // raw actor name from the event
	Subreddit string

	// DisplayName is the normalized name used in reports. For organizational
	// admin accounts this is the bare organizational name; otherwise the
	// actor's username.
	DisplayName string
	// IsUser is false for the organizational admin accounts.
	IsUser bool

	Permalink  string
	TargetID   types.ContentID
	TargetUser string
	Banned     bool

	// ContentDate is a day-precision date set only when the targeted content
	// is older than the snapshot retention window, signaling that no cached
	// copy can exist anymore.
	ContentDate string

	URL   Field
	Title Field
	Body  Field
}

// ActorLabel renders the actor for message text: "u/name" for users, the
// bare organizational name otherwise.
func (x *Record) ActorLabel() string {
	if x.IsUser {
		return "u/" + x.DisplayName
	}
	return x.DisplayName
}

// TargetUserLabel renders the target user with its ban annotation.
func (x *Record) TargetUserLabel() string {
	if x.TargetUser == "" {
		return ""
	}
	if x.Banned {
		return fmt.Sprintf("u/%s (Banned)", x.TargetUser)
	}
	return "u/" + x.TargetUser
}

// ModlogLabel is the link text of the modlog reference appended to every
// report.
func (x *Record) ModlogLabel() string {
	if x.IsUser {
		return "View User Modlog"
	}
	return "View Admin Modlog"
}

// ModlogURL links to the community modlog, filtered to the synthetic admin
// query for organizational accounts and to the actor's own entries otherwise.
func (x *Record) ModlogURL() string {
	if x.IsUser {
		return fmt.Sprintf("https://www.reddit.com/mod/%s/log?moderatorNames=%s", x.Subreddit, x.DisplayName)
	}
	return fmt.Sprintf("https://www.reddit.com/mod/%s/log?moderatorNames=a", x.Subreddit)
}
