package articles

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"articles",
		logger.WithNamedLogger("articles"),
		fx.Provide(NewRepository, fx.Private),
		fx.Provide(NewService),
	)
}
