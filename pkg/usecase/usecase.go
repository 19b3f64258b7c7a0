package usecase

import (
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/repository"
	"github.com/modwatch-lab/tattler/pkg/service/classifier"
	"github.com/modwatch-lab/tattler/pkg/service/modnote"
	"github.com/modwatch-lab/tattler/pkg/service/notify"
)

// UseCases wires the detection-and-recovery pipeline: snapshot caching,
// roster caching, classification, report dispatch and mod-note annotation.
type UseCases struct {
	settings   interfaces.SettingsProvider
	roster     *repository.Roster
	snapshots  *repository.Snapshots
	classifier *classifier.Service
	dispatcher *notify.Dispatcher
	notes      *modnote.Service
}

type Option func(*UseCases)

func WithSettings(provider interfaces.SettingsProvider) Option {
	return func(u *UseCases) {
		u.settings = provider
	}
}

func WithRoster(roster *repository.Roster) Option {
	return func(u *UseCases) {
		u.roster = roster
	}
}

func WithSnapshots(snapshots *repository.Snapshots) Option {
	return func(u *UseCases) {
		u.snapshots = snapshots
	}
}

func WithClassifier(svc *classifier.Service) Option {
	return func(u *UseCases) {
		u.classifier = svc
	}
}

func WithDispatcher(dispatcher *notify.Dispatcher) Option {
	return func(u *UseCases) {
		u.dispatcher = dispatcher
	}
}

func WithModNotes(svc *modnote.Service) Option {
	return func(u *UseCases) {
		u.notes = svc
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
