package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"github.com/quillcms/quill/internal/articles"
	"github.com/quillcms/quill/internal/auth"
	"github.com/quillcms/quill/internal/config"
	"github.com/quillcms/quill/internal/server"
	"github.com/quillcms/quill/pkg/badgerfx"
	"github.com/quillcms/quill/pkg/openapifx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		openapifx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.1.0", ReleaseID: 1} }),
		auth.Module(),
		articles.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("🚀 Quill application starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("🛑 Quill application shutting down gracefully")
					return nil
				},
			})
		}),
	).Run()
}
