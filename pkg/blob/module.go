package blob

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the Cloud Storage backed Store and ties the client's
// lifetime to the fx lifecycle.
var Module = fx.Module("blob",
	fx.Provide(newStore),
)

func newStore(lc fx.Lifecycle, cfg GCSConfig, log *zap.Logger) (Store, error) {
	store, err := NewGCSStore(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	log.Info("blob store initialized",
		zap.String("bucket", cfg.Bucket),
		zap.Duration("fetch_timeout", store.timeout),
	)
	return store, nil
}
