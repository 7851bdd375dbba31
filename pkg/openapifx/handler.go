package openapifx

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Handler serves the interactive OpenAPI documentation for a registered
// swag spec.
type Handler struct {
	spec *swag.Spec

	logger *zap.Logger
}

func New(spec *swag.Spec, logger *zap.Logger) *Handler {
	return &Handler{
		spec: spec,

		logger: logger,
	}
}

func (h *Handler) Register(r fiber.Router) {
	r.Get("/*", swagger.New(swagger.Config{
		InstanceName: h.spec.InstanceName(),
	}))
}
