package api

import (
	"github.com/praxishq/praxis/internal/services"
	"go.uber.org/zap"
)

type Handler struct {
	planService *services.PlanService
	secretKey   []byte
	log         *zap.Logger
}

func NewHandler(planService *services.PlanService, secret string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		planService: planService,
		secretKey:   []byte(secret),
		log:         log.With(zap.String("component", "api")),
	}
}
