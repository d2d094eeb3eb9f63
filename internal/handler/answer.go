package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/qna-service/internal/auth"
	"github.com/sakif/qna-service/internal/model"
)

type answerService interface {
	Add(ctx context.Context, accountID int, na model.NewAnswer) (*model.Answer, error)
}

// AnswerHandler serves answer creation.
type AnswerHandler struct {
	answers answerService
	logger  *slog.Logger
}

// NewAnswerHandler creates an AnswerHandler.
func NewAnswerHandler(answers answerService, logger *slog.Logger) *AnswerHandler {
	return &AnswerHandler{answers: answers, logger: logger}
}

// HandleCreate screens and persists an answer.
//
// HTTP: POST /answers (auth required)
func (h *AnswerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid authentication required"})
		return
	}

	var na model.NewAnswer
	if err := decodeValid(r, &na); err != nil {
		writeError(w, err)
		return
	}

	answer, err := h.answers.Add(r.Context(), accountID, na)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, answer)
}
