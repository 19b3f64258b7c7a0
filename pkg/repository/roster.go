package repository

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/domain/types"
	"github.com/modwatch-lab/tattler/pkg/utils/logging"
)

// rosterKey is the single roster row for the community this process serves.
const rosterKey = "mods"

// ModSet is the cached set of community moderator usernames.
type ModSet map[string]struct{}

func (x ModSet) Contains(name string) bool {
	_, ok := x[name]
	return ok
}

// Roster caches the community moderator list in the key/value store. The
// stored roster has no expiry: it stays valid until the next successful
// refresh.
type Roster struct {
	kv        interfaces.KeyValueStore
	provider  interfaces.RosterProvider
	subreddit string
}

func NewRoster(kv interfaces.KeyValueStore, provider interfaces.RosterProvider, subreddit string) *Roster {
	return &Roster{
		kv:        kv,
		provider:  provider,
		subreddit: subreddit,
	}
}

// Refresh pages through the live roster and overwrites the stored list
// wholesale. A fetch that yields zero moderators is treated as a transient
// provider error and the stale roster is kept; the caller's own event may
// still proceed on the stale data.
func (x *Roster) Refresh(ctx context.Context) error {
	var names []string
	var after string
	for {
		page, next, err := x.provider.ListModerators(ctx, x.subreddit, after, types.RosterPageSize)
		if err != nil {
			return goerr.Wrap(err, "failed to fetch moderator list",
				goerr.T(errs.TagProvider), goerr.V("subreddit", x.subreddit))
		}
		names = append(names, page...)
		if next == "" {
			break
		}
		after = next
	}

	if len(names) == 0 {
		return goerr.New("fetched moderator list is empty, keeping cached roster",
			goerr.T(errs.TagProvider), goerr.V("subreddit", x.subreddit))
	}

	if err := x.kv.Set(ctx, rosterKey, strings.Join(names, ",")); err != nil {
		return goerr.Wrap(err, "failed to write moderator list",
			goerr.T(errs.TagProvider), goerr.V("subreddit", x.subreddit))
	}

	logging.From(ctx).Info("Cached moderator roster",
		"subreddit", x.subreddit, "count", len(names))
	return nil
}

// Get returns the cached roster. A process that has never cached a roster
// cannot classify anything; that is a configuration error, not a miss.
func (x *Roster) Get(ctx context.Context) (ModSet, error) {
	raw, ok, err := x.kv.Get(ctx, rosterKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read cached roster", goerr.T(errs.TagProvider))
	}
	if !ok || raw == "" {
		return nil, goerr.New("no moderator roster has been cached", goerr.T(errs.TagConfig))
	}

	mods := make(ModSet)
	for _, name := range strings.Split(raw, ",") {
		mods[name] = struct{}{}
	}
	return mods, nil
}
