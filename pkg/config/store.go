package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getmockd/mockswitch/pkg/logging"
	"github.com/getmockd/mockswitch/pkg/store"
	"github.com/getmockd/mockswitch/pkg/store/file"
	"github.com/getmockd/mockswitch/pkg/store/redisstore"
)

// OpenStore opens the storage backend described by cfg. The caller owns the
// returned store and must Close it.
func OpenStore(ctx context.Context, cfg StorageConfig, log *slog.Logger) (store.KV, error) {
	if log == nil {
		log = logging.Nop()
	}

	switch cfg.Backend {
	case store.BackendMemory:
		log.Debug("using memory storage; handler state is lost on exit")
		return store.NewMemory(), nil

	case store.BackendRedis:
		s, err := redisstore.Open(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		log.Debug("using redis storage", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		return s, nil

	case store.BackendFile, "":
		var opts []file.Option
		if cfg.File != "" {
			opts = append(opts, file.WithFileName(cfg.File))
		}
		if cfg.ReadOnly {
			opts = append(opts, file.WithReadOnly())
		}
		s := file.New(cfg.Dir, opts...)
		log.Debug("using file storage", "path", s.Path())
		return s, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
