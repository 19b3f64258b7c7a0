package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/domain/model/event"
	"github.com/modwatch-lab/tattler/pkg/utils/logging"
)

// HandlePost snapshots a submitted or edited post. Snapshot failure never
// surfaces; the triggering event must succeed regardless.
func (x *UseCases) HandlePost(ctx context.Context, ev *event.PostSubmit) error {
	if ev.Post == nil {
		return goerr.New("missing post in content event", goerr.T(errs.TagFatalEvent))
	}
	x.snapshots.PutPost(ctx, ev.Post)
	return nil
}

// HandleComment snapshots a submitted or edited comment.
func (x *UseCases) HandleComment(ctx context.Context, ev *event.CommentSubmit) error {
	if ev.Comment == nil {
		return goerr.New("missing comment in content event", goerr.T(errs.TagFatalEvent))
	}
	x.snapshots.PutComment(ctx, ev.Comment)
	return nil
}

// HandleLifecycle re-caches the moderator roster on install and upgrade.
func (x *UseCases) HandleLifecycle(ctx context.Context, ev *event.Lifecycle) error {
	logging.From(ctx).Info("Updating cached roster on lifecycle event", "kind", ev.Kind)
	return x.roster.Refresh(ctx)
}

// RefreshRoster re-caches the roster outside of any trigger (startup and
// scheduled refresh).
func (x *UseCases) RefreshRoster(ctx context.Context) error {
	return x.roster.Refresh(ctx)
}
