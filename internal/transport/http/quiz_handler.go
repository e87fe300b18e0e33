package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"vidquiz-service/internal/app"
	"vidquiz-service/internal/domain"
)

// QuizHandler exposes quiz generation over plain HTTP.
type QuizHandler struct {
	service *app.QuizService
}

func NewQuizHandler(service *app.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

type generateRequest struct {
	VideoID  string `json:"videoId"`
	Strategy string `json:"strategy,omitempty"`
}

type generateResponse struct {
	Quiz domain.QuizDocument `json:"quiz"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GenerateQuiz handles POST /generate-quiz.
func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.VideoID) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "videoId is required"})
		return
	}

	doc, err := h.service.GenerateQuiz(r.Context(), req.VideoID, req.Strategy)
	if err != nil {
		log.Printf("generate quiz for video %s failed: %v", req.VideoID, err)
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Quiz: doc})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}
