package pipeline

import (
	"github.com/smallbiznis/retailflow/internal/fingerprint"
	"github.com/smallbiznis/retailflow/internal/refdata"
	"github.com/smallbiznis/retailflow/internal/txload"
	"go.uber.org/fx"
)

var Module = fx.Module("pipeline",
	fx.Provide(
		fingerprint.New,
		refdata.NewLoader,
		txload.NewLoader,
		New,
	),
)
