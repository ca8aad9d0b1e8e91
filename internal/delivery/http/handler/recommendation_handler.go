package handler

import (
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

// RegisterRoutes expects r to be behind the auth middleware.
func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/recommendations")
	grp.Get("/job/:job_id/candidates", middleware.RequireRole(jwt.RoleRecruiter), h.TopCandidates)

	candidate := middleware.RequireRole(jwt.RoleCandidate)
	grp.Post("/generate", candidate, h.Generate)
	grp.Get("/", candidate, h.List)
	grp.Get("/stats/overview", candidate, h.Stats)
	grp.Delete("/clear", candidate, h.Clear)
	grp.Get("/:id", candidate, h.Get)
	grp.Patch("/:id/viewed", candidate, h.MarkViewed)
}

func (h *RecommendationHandler) Generate(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	report, err := h.uc.Generate(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Recommendations generated", dto.NewGenerationResponse(report))
}

func (h *RecommendationHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	minScore, err := parseQueryInt(c, "min_score", 0)
	if err != nil {
		return err
	}
	limit, err := parseQueryInt(c, "limit", usecase.DefaultListLimit)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, usecase.ListParams{MinScore: minScore, Limit: limit})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.NewRecommendationListResponse(items), len(items))
}

func (h *RecommendationHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	rec, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationResponse(rec))
}

func (h *RecommendationHandler) MarkViewed(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	rec, err := h.uc.MarkViewed(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Recommendation marked as viewed", dto.NewRecommendationResponse(rec))
}

func (h *RecommendationHandler) Stats(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	s, err := h.uc.Stats(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStatsResponse(s))
}

func (h *RecommendationHandler) Clear(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	n, err := h.uc.Clear(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Recommendations cleared", dto.ClearResponse{Deleted: n})
}

func (h *RecommendationHandler) TopCandidates(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "job_id")
	if err != nil {
		return err
	}

	items, err := h.uc.TopCandidates(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.NewCandidateMatchListResponse(items), len(items))
}
