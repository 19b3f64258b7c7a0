package classifier

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/domain/model/alert"
	"github.com/modwatch-lab/tattler/pkg/domain/model/event"
	"github.com/modwatch-lab/tattler/pkg/domain/types"
	"github.com/modwatch-lab/tattler/pkg/repository"
	"github.com/modwatch-lab/tattler/pkg/utils/clock"
	"github.com/modwatch-lab/tattler/pkg/utils/logging"
)

// Service decides whether a moderation action is admin activity and builds
// the alert record the channels render from.
type Service struct {
	roster    *repository.Roster
	snapshots *repository.Snapshots
	bans      interfaces.BanStatusProvider
}

func New(roster *repository.Roster, snapshots *repository.Snapshots, bans interfaces.BanStatusProvider) *Service {
	return &Service{
		roster:    roster,
		snapshots: snapshots,
		bans:      bans,
	}
}

// Classify returns the alert record for an admin action, or nil when the
// event is not admin activity. The event must already be validated.
func (x *Service) Classify(ctx context.Context, ev *event.ModAction) (*alert.Record, error) {
	logger := logging.From(ctx)
	actor := ev.Moderator.Name

	// A roster mutation must be observed before the membership check.
	if ev.Action.MutatesRoster() {
		logger.Info("Refreshing cached roster on roster mutation",
			"action", ev.Action, "actor", actor)
		if err := x.roster.Refresh(ctx); err != nil {
			// Stale roster is still usable; degrade rather than abort.
			logger.Warn("Roster refresh failed, using cached roster", logging.ErrAttr(err))
		}
	}

	mods, err := x.roster.Get(ctx)
	if err != nil {
		return nil, err
	}

	if mods.Contains(actor) || types.IsSystemAccount(actor) {
		return nil, nil
	}

	// A moderator removing themselves briefly fails the roster check at the
	// moment of departure. Not admin activity.
	if ev.Action == types.ActionRemoveModerator &&
		ev.TargetUser != nil && ev.TargetUser.Name == actor {
		logger.Info("Ignored self-removal", "actor", actor)
		return nil, nil
	}

	logger.Info("Detected admin activity", "action", ev.Action, "actor", actor)

	rec := &alert.Record{
		Action:    ev.Action,
		Actor:     actor,
		Subreddit: ev.Subreddit.Name,
	}

	if display, ok := types.AdminAccount(actor); ok {
		rec.DisplayName = display
		rec.IsUser = false
	} else {
		rec.DisplayName = actor
		rec.IsUser = true
	}

	target := ev.Target()
	rec.TargetID = target.ID()
	switch target.Kind {
	case event.TargetPost:
		x.resolvePost(ctx, rec, target.Post)
	case event.TargetComment:
		x.resolveComment(ctx, rec, target.Comment)
	}

	if created := target.CreatedAt(); !created.IsZero() &&
		clock.Since(ctx, created) > types.SnapshotTTL {
		rec.ContentDate = created.UTC().Format("2006-01-02")
	}

	if ev.TargetUser != nil && ev.TargetUser.ID != "" {
		rec.TargetUser = ev.TargetUser.Name
		rec.Banned = x.checkBanned(ctx, ev.Subreddit.Name, ev.TargetUser.Name)
	}

	return rec, nil
}

// resolvePost merges the live post with its cached snapshot. Each field
// independently prefers the live copy; only when the live title carries the
// removal placeholder do non-empty cached fields take over, with provenance
// recorded per field.
func (x *Service) resolvePost(ctx context.Context, rec *alert.Record, post *event.Post) {
	if post.Permalink != "" {
		rec.Permalink = "https://www.reddit.com" + post.Permalink
	}
	if meaningfulURL(post.URL, post.ID) {
		rec.URL = alert.Field{Value: post.URL}
	}
	rec.Body = alert.Field{Value: post.Selftext}
	rec.Title = alert.Field{Value: post.Title}

	if post.Title != types.RemovedPlaceholder {
		return
	}

	snap, ok := x.snapshots.GetPost(ctx, post.ID)
	if !ok {
		return
	}
	if snap.Title != "" {
		rec.Title = alert.Field{Value: snap.Title, Cached: true}
	}
	if snap.URL != "" && meaningfulURL(snap.URL, post.ID) {
		rec.URL = alert.Field{Value: snap.URL, Cached: true}
	}
	if snap.Body != "" {
		rec.Body = alert.Field{Value: snap.Body, Cached: true}
	}
}

func (x *Service) resolveComment(ctx context.Context, rec *alert.Record, comment *event.Comment) {
	if comment.Permalink != "" {
		rec.Permalink = "https://www.reddit.com" + comment.Permalink
	}
	rec.Body = alert.Field{Value: comment.Body}

	if comment.Body != types.RemovedPlaceholder {
		return
	}

	if cached, ok := x.snapshots.GetComment(ctx, comment.ID); ok && cached != "" {
		rec.Body = alert.Field{Value: cached, Cached: true}
	}
}

// checkBanned treats exactly one banned-listing match as banned. Lookup
// failure never fails the alert.
func (x *Service) checkBanned(ctx context.Context, subreddit, username string) bool {
	records, err := x.bans.ListBans(ctx, subreddit, username)
	if err != nil {
		logging.From(ctx).Warn("Ban status lookup failed",
			logging.ErrAttr(goerr.Wrap(err, "ban lookup", goerr.V("user", username))))
		return false
	}
	return len(records) == 1
}

// meaningfulURL rejects URLs that simply echo the content's own ID.
func meaningfulURL(url string, id types.ContentID) bool {
	return url != "" && !strings.Contains(url, id.BareID())
}
