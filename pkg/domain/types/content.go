package types

import (
	"strings"
	"time"
)

// ContentID is a content fullname including its type discriminator prefix
// ("t3_" for posts, "t1_" for comments). The prefix keeps posts and comments
// in two logical keyspaces within one key/value store.
type ContentID string

const (
	PostIDPrefix    = "t3_"
	CommentIDPrefix = "t1_"
)

func (x ContentID) String() string {
	return string(x)
}

// BareID strips the fullname type prefix. A URL that merely echoes the bare
// ID is self-referential and carries no information worth reporting.
func (x ContentID) BareID() string {
	if s := string(x); len(s) > 3 && (strings.HasPrefix(s, PostIDPrefix) || strings.HasPrefix(s, CommentIDPrefix)) {
		return s[3:]
	}
	return string(x)
}

func (x ContentID) IsPost() bool {
	return strings.HasPrefix(string(x), PostIDPrefix)
}

func (x ContentID) IsComment() bool {
	return strings.HasPrefix(string(x), CommentIDPrefix)
}

// RemovedPlaceholder is the string the platform substitutes for content
// redacted by an admin action.
const RemovedPlaceholder = "[ Removed by Reddit ]"

// SnapshotTTL is the retention window of the content snapshot cache.
// Content older than this cannot have a live snapshot anymore.
const SnapshotTTL = 14 * 24 * time.Hour

// RosterPageSize is the page size used when listing community moderators.
const RosterPageSize = 500
