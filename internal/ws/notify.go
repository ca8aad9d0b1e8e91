package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventRecommendationsGenerated = "recommendations_generated"

type RecommendationsGeneratedEvent struct {
	Type         string    `json:"type"`
	CandidateID  uuid.UUID `json:"candidate_id"`
	GenerationID uuid.UUID `json:"generation_id"`
	Count        int       `json:"count"`
	Timestamp    string    `json:"timestamp"`
}

// NotifyGenerated tells a candidate's open sockets that a new recommendation set is stored.
func (h *Hub) NotifyGenerated(candidateID, generationID uuid.UUID, count int) {
	if h == nil {
		return
	}

	evt := RecommendationsGeneratedEvent{
		Type:         EventRecommendationsGenerated,
		CandidateID:  candidateID,
		GenerationID: generationID,
		Count:        count,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logger.Warn("ws event encode failed", zap.Error(err))
		return
	}
	h.SendTo(candidateID, b)
}
