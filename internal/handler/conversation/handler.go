package conversation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oralabs/ora/backend/internal/model/action"
	"github.com/oralabs/ora/backend/internal/model/conversation"
	"github.com/oralabs/ora/backend/internal/service/pipeline"
	"github.com/oralabs/ora/backend/pkg/utils"
)

const defaultHistoryLimit = 20

// Handler exposes the turn pipeline over HTTP.
type Handler struct {
	pipeline *pipeline.Pipeline
}

// New creates the conversation handler.
func New(p *pipeline.Pipeline) *Handler {
	return &Handler{pipeline: p}
}

// RegisterRoutes registers conversation-related routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/voice_conversation", h.handleTurn)
	r.Get("/conversation/{userID}", h.handleHistory)
	r.Get("/actions/{userID}", h.handleActions)
	r.Get("/summary/{userID}", h.handleSummary)
}

// turnRequest is one user utterance submitted for processing.
type turnRequest struct {
	Message     string `json:"message"`
	UserID      string `json:"user_id"`
	Personality string `json:"personality"`
}

// turnResponse is the full turn result returned to the client. Audio
// is base64 via the standard []byte JSON encoding, null when speech
// synthesis is disabled or failed.
type turnResponse struct {
	Success           bool               `json:"success"`
	AssistantResponse string             `json:"assistant_response,omitempty"`
	AudioResponse     []byte             `json:"audio_response"`
	DominantEmotion   string             `json:"dominant_emotion,omitempty"`
	EmotionConfidence float64            `json:"emotion_confidence,omitempty"`
	Emotions          map[string]float64 `json:"emotions,omitempty"`
	RiskLevel         string             `json:"risk_level,omitempty"`
	ActionsTaken      []string           `json:"actions_taken,omitempty"`
	Urgency           string             `json:"urgency,omitempty"`
	ProcessingTime    float64            `json:"processing_time"`
	Error             string             `json:"error,omitempty"`
}

func (h *Handler) handleTurn(w http.ResponseWriter, r *http.Request) {
	var payload turnRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, turnResponse{Error: "invalid request body"})
		return
	}

	result, err := h.pipeline.ProcessTurn(r.Context(), pipeline.Input{
		UserID:    payload.UserID,
		Message:   payload.Message,
		ProfileID: payload.Personality,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrEmptyMessage) {
			status = http.StatusBadRequest
		}
		utils.RespondJSON(w, status, turnResponse{Error: err.Error()})
		return
	}

	utils.RespondJSON(w, http.StatusOK, turnResponse{
		Success:           true,
		AssistantResponse: result.Reply,
		AudioResponse:     result.Audio,
		DominantEmotion:   string(result.Dominant),
		EmotionConfidence: result.Confidence,
		Emotions:          result.Emotions.ToMap(),
		RiskLevel:         string(result.Assessment.Tier),
		ActionsTaken:      result.ActionsTaken,
		Urgency:           string(result.Urgency),
		ProcessingTime:    result.ProcessingTime.Seconds(),
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "userID is required")
		return
	}

	turns := h.pipeline.History(userID, defaultHistoryLimit)
	if turns == nil {
		turns = []conversation.Turn{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"user_id":       userID,
		"conversations": turns,
		"count":         len(turns),
	})
}

func (h *Handler) handleActions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "userID is required")
		return
	}

	events := h.pipeline.ActionHistory(userID)
	if events == nil {
		events = []action.Event{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"actions": events,
		"count":   len(events),
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "userID is required")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.pipeline.Summarize(userID))
}
