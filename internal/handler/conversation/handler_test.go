package conversation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oralabs/ora/backend/internal/model/personality"
	"github.com/oralabs/ora/backend/internal/service/dispatch"
	emotionservice "github.com/oralabs/ora/backend/internal/service/emotion"
	"github.com/oralabs/ora/backend/internal/service/generate"
	"github.com/oralabs/ora/backend/internal/service/pipeline"
	riskservice "github.com/oralabs/ora/backend/internal/service/risk"
	"github.com/oralabs/ora/backend/internal/service/session"
	"github.com/oralabs/ora/backend/internal/service/speech"
)

func setupRouter() *chi.Mux {
	turns := pipeline.New(
		emotionservice.NewClassifier(nil, emotionservice.NewKeywordProvider(), time.Second),
		riskservice.NewAssessor(),
		generate.NewGenerator(nil, time.Second, nil),
		speech.NewAdapter(nil, 0, time.Second),
		dispatch.NewDispatcher(nil, nil),
		session.NewLRUStore(0, 0),
		personality.NewMemoryStore(personality.Seed(), "empathetic"),
	)

	r := chi.NewRouter()
	New(turns).RegisterRoutes(r)
	return r
}

func postTurn(t *testing.T, r http.Handler, body map[string]string) (*httptest.ResponseRecorder, turnResponse) {
	t.Helper()

	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/voice_conversation", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var parsed turnResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return resp, parsed
}

func TestTurnReturnsFullResult(t *testing.T) {
	r := setupRouter()

	resp, parsed := postTurn(t, r, map[string]string{
		"message": "I feel anxious about tomorrow",
		"user_id": "u1",
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !parsed.Success {
		t.Fatalf("expected success, got error %q", parsed.Error)
	}
	if parsed.AssistantResponse == "" {
		t.Fatal("expected a reply")
	}
	if parsed.DominantEmotion == "" || parsed.RiskLevel == "" || parsed.Urgency == "" {
		t.Fatalf("expected emotion and risk fields, got %+v", parsed)
	}
	if parsed.AudioResponse != nil {
		t.Fatal("expected null audio without a synthesis provider")
	}
}

func TestTurnMissingMessage(t *testing.T) {
	r := setupRouter()

	resp, parsed := postTurn(t, r, map[string]string{"user_id": "u1"})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if parsed.Success {
		t.Fatal("expected success=false")
	}
	if parsed.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestTurnInvalidBody(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/voice_conversation", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHistoryAfterTurn(t *testing.T) {
	r := setupRouter()

	if resp, _ := postTurn(t, r, map[string]string{"message": "hello", "user_id": "u2"}); resp.Code != http.StatusOK {
		t.Fatalf("turn failed with %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/conversation/u2", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var parsed struct {
		UserID string `json:"user_id"`
		Count  int    `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if parsed.Count != 2 {
		t.Fatalf("expected 2 stored turns, got %d", parsed.Count)
	}
}

func TestActionsEmptyForUnknownUser(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/actions/nobody", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var parsed struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if parsed.Count != 0 {
		t.Fatalf("expected no actions, got %d", parsed.Count)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	r := setupRouter()

	if resp, _ := postTurn(t, r, map[string]string{"message": "I feel anxious and worried", "user_id": "u3"}); resp.Code != http.StatusOK {
		t.Fatalf("turn failed with %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/summary/u3", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var parsed struct {
		ConversationCount int    `json:"conversationCount"`
		DominantEmotion   string `json:"dominantEmotion"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if parsed.ConversationCount != 1 {
		t.Fatalf("expected 1 user turn, got %d", parsed.ConversationCount)
	}
	if parsed.DominantEmotion == "" {
		t.Fatal("expected a dominant emotion")
	}
}
