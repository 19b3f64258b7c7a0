package interfaces

import (
	"context"

	"github.com/modwatch-lab/tattler/pkg/domain/model/settings"
	"github.com/modwatch-lab/tattler/pkg/domain/types"
)

// RosterProvider lists the live moderators of a community, one page at a
// time. An empty `after` starts the listing; an empty returned cursor ends
// it.
type RosterProvider interface {
	ListModerators(ctx context.Context, subreddit, after string, limit int) (names []string, next string, err error)
}

// BanRecord is one entry of a community's banned-user listing.
type BanRecord struct {
	Username string
	Note     string
}

// BanStatusProvider queries the banned-user listing for a single username.
// Lookups are best-effort enrichment; callers must tolerate failure.
type BanStatusProvider interface {
	ListBans(ctx context.Context, subreddit, username string) ([]BanRecord, error)
}

// NoteWriter adds an internal mod note against a user and the content the
// note refers to.
type NoteWriter interface {
	AddNote(ctx context.Context, subreddit, username string, contentID types.ContentID, label, text string) error
}

// ModmailSender delivers an internal mail message to the community's modmail.
type ModmailSender interface {
	SendModmail(ctx context.Context, subreddit, subject, body string) error
}

// SettingsProvider returns the current report configuration.
type SettingsProvider interface {
	GetAll(ctx context.Context) (*settings.Settings, error)
}
