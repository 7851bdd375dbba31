package server

import (
	"strings"

	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-core-fx/fiberfx/health"
	"github.com/go-core-fx/fiberfx/validation"
	"github.com/go-core-fx/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/quillcms/quill/internal/server/docs"
	"github.com/quillcms/quill/internal/server/handlers/articles"
	"github.com/quillcms/quill/internal/server/handlers/users"
	"github.com/quillcms/quill/pkg/openapifx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"server",
		logger.WithNamedLogger("server"),

		fx.Provide(func(log *zap.Logger) fiberfx.Options {
			opts := fiberfx.Options{}
			opts.WithErrorHandler(fiberfx.NewJSONErrorHandler(log))
			opts.WithMetrics()
			return opts
		}),
		fx.Supply(docs.SwaggerInfo),

		fx.Provide(
			fx.Annotate(health.NewHandler, fx.ResultTags(`name:"health-handler"`)), fx.Private,
			fx.Annotate(users.NewHandler, fx.ResultTags(`group:"handlers"`)), fx.Private,
			fx.Annotate(articles.NewHandler, fx.ResultTags(`group:"handlers"`)), fx.Private,
		),

		fx.Invoke(
			fx.Annotate(
				func(handlers []handler.Handler, healthHandler handler.Handler, openapiHandler *openapifx.Handler, app *fiber.App, cfg Config) {
					app.Use(cors.New(cors.Config{
						AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
						AllowCredentials: true,
					}))
					app.Use(compress.New())
					if cfg.LimiterMax > 0 {
						app.Use(limiter.New(limiter.Config{
							Max:        cfg.LimiterMax,
							Expiration: cfg.LimiterWindow,
						}))
					}

					// Health endpoint
					healthHandler.Register(app)

					// Version 1 API group
					v1 := app.Group("/api/v1")
					openapiHandler.Register(v1.Group("/docs"))

					v1.Use(validation.Middleware)

					for _, h := range handlers {
						h.Register(v1)
					}
				},
				fx.ParamTags(`group:"handlers"`, `name:"health-handler"`),
			),
		),
	)
}
