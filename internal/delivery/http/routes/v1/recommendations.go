package v1

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func RegisterRecommendations(r fiber.Router, recHandler *handler.RecommendationHandler, wsHandler *ws.Handler) {
	if r == nil {
		return
	}
	if recHandler != nil {
		recHandler.RegisterRoutes(r)
	}
	if wsHandler != nil {
		r.Get("/ws/recommendations", middleware.RequireRole(jwt.RoleCandidate), wsHandler.HandleRecommendationsWS)
	}
}
