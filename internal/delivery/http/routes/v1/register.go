package v1

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Skills          *handler.SkillHandler
	Recommendations *handler.RecommendationHandler
	Match           *handler.MatchHandler
	WS              *ws.Handler
}

func Register(r fiber.Router, auth *middleware.AuthMiddleware, h Handlers) {
	if r == nil {
		return
	}

	if h.Skills != nil {
		h.Skills.RegisterRoutes(r)
	}

	if auth == nil {
		return
	}
	protected := r.Group("", auth.Middleware())

	RegisterRecommendations(protected, h.Recommendations, h.WS)
	RegisterJobs(protected, h.Match)
}
