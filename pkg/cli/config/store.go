package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/adapter/kvs"
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/urfave/cli/v3"
)

type Store struct {
	backend string
	path    string
}

func (x *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store",
			Usage:       "Key/value store backend [sqlite|memory]",
			Category:    "Store",
			Sources:     cli.EnvVars("TATTLER_STORE"),
			Value:       "sqlite",
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "store-path",
			Usage:       "SQLite database path",
			Category:    "Store",
			Sources:     cli.EnvVars("TATTLER_STORE_PATH"),
			Value:       "tattler.db",
			Destination: &x.path,
		},
	}
}

func (x Store) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("path", x.path),
	)
}

// Configure returns the key/value store and a closer. The SQLite store also
// supports periodic cleanup of expired rows; callers interested in that can
// type-assert for Cleanup.
func (x *Store) Configure() (interfaces.KeyValueStore, func(), error) {
	switch x.backend {
	case "memory":
		return kvs.NewMemory(), func() {}, nil

	case "sqlite":
		store, err := kvs.NewSQLite(x.path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, goerr.New("invalid store backend", goerr.V("backend", x.backend))
	}
}
