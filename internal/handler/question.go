package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/qna-service/internal/auth"
	"github.com/sakif/qna-service/internal/model"
	"github.com/sakif/qna-service/internal/pagination"
)

type questionService interface {
	Create(ctx context.Context, accountID int, nq model.NewQuestion) (*model.Question, error)
	List(ctx context.Context, p pagination.Pagination) ([]model.Question, error)
	Update(ctx context.Context, id int, nq model.NewQuestion) (*model.Question, error)
	Delete(ctx context.Context, id int) error
}

// QuestionHandler serves the question routes. Reads are public; writes sit
// behind the auth guard, which has already injected the account ID into
// the request context by the time these handlers run.
type QuestionHandler struct {
	questions questionService
	logger    *slog.Logger
}

// NewQuestionHandler creates a QuestionHandler.
func NewQuestionHandler(questions questionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, logger: logger}
}

// HandleList returns a bounded page of questions.
//
// HTTP: GET /questions?limit=&offset=
// Both parameters are mandatory; 400 MissingParameters otherwise.
func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := pagination.FromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	questions, err := h.questions.List(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// HandleCreate screens and persists a new question.
//
// HTTP: POST /questions (auth required)
func (h *QuestionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth; kept as a guard against route
		// wiring mistakes.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid authentication required"})
		return
	}

	var nq model.NewQuestion
	if err := decodeValid(r, &nq); err != nil {
		writeError(w, err)
		return
	}

	question, err := h.questions.Create(r.Context(), accountID, nq)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

// HandleUpdate screens replacement text and overwrites a question.
//
// HTTP: PUT /questions/{id} (auth required)
func (h *QuestionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var nq model.NewQuestion
	if err := decodeValid(r, &nq); err != nil {
		writeError(w, err)
		return
	}

	question, err := h.questions.Update(r.Context(), id, nq)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// HandleDelete removes a question.
//
// HTTP: DELETE /questions/{id} (auth required)
func (h *QuestionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.questions.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "question deleted"})
}
