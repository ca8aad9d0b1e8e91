package v1

import (
	"talent-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterJobs(r fiber.Router, matchHandler *handler.MatchHandler) {
	if r == nil {
		return
	}
	if matchHandler == nil {
		return
	}

	matchHandler.RegisterRoutes(r)
}
