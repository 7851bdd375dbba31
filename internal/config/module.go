package config

import (
	"github.com/go-core-fx/fiberfx"
	"github.com/quillcms/quill/internal/articles"
	"github.com/quillcms/quill/internal/auth"
	"github.com/quillcms/quill/internal/server"
	"github.com/quillcms/quill/pkg/badgerfx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir: cfg.Storage.DataDir,
			}
		}),
		fx.Provide(func(cfg Config) (auth.Config, error) {
			secret := []byte(cfg.Auth.SecretKey)
			if len(secret) == 0 {
				generated, err := auth.NewRandomSecret()
				if err != nil {
					return auth.Config{}, err
				}
				secret = generated
			}

			return auth.Config{
				SecretKey:  secret,
				TokenTTL:   cfg.Auth.TokenTTL,
				BcryptCost: cfg.Auth.BcryptCost,
			}, nil
		}),
		fx.Provide(func(cfg Config) articles.Config {
			return articles.Config{
				PageSize: cfg.Articles.PageSize,
			}
		}),
		fx.Provide(func(cfg Config) server.Config {
			return server.Config{
				CORSOrigins:   cfg.HTTP.CORSOrigins,
				LimiterMax:    cfg.HTTP.Limiter.Max,
				LimiterWindow: cfg.HTTP.Limiter.Window,
			}
		}),
	)
}
