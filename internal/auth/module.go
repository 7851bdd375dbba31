package auth

import (
	"github.com/go-core-fx/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"auth",
		logger.WithNamedLogger("auth"),
		fx.Provide(NewRepository, fx.Private),
		fx.Provide(NewPasswordHasher, fx.Private),
		fx.Provide(NewMetrics, fx.Private),
		fx.Provide(NewService),
		fx.Invoke(func(metrics *Metrics) {
			metrics.MustRegister(prometheus.DefaultRegisterer)
		}),
	)
}
