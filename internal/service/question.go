package service

import (
	"context"
	"log/slog"

	"github.com/sakif/qna-service/internal/model"
	"github.com/sakif/qna-service/internal/moderation"
	"github.com/sakif/qna-service/internal/pagination"
	"github.com/sakif/qna-service/internal/repository"
)

// Moderator screens one free-text field. Satisfied by *moderation.Client;
// tests substitute a fake.
type Moderator interface {
	Check(ctx context.Context, text string) (moderation.Result, error)
}

// QuestionService handles question reads and moderated writes.
//
// Every write screens its text fields through the moderator before the
// repository is touched: if any screening call fails, nothing is persisted.
// Profane text does not fail the write — the censored variant is stored
// instead.
type QuestionService struct {
	questions repository.QuestionRepository
	moderator Moderator
	logger    *slog.Logger
}

// NewQuestionService creates a QuestionService.
func NewQuestionService(questions repository.QuestionRepository, moderator Moderator, logger *slog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		moderator: moderator,
		logger:    logger,
	}
}

// Create screens and persists a new question authored by accountID.
func (s *QuestionService) Create(ctx context.Context, accountID int, nq model.NewQuestion) (*model.Question, error) {
	title, content, err := s.moderate(ctx, nq.Title, nq.Content)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		Title:   title,
		Content: content,
		Tags:    nq.Tags,
	}
	if err := s.questions.CreateQuestion(ctx, question, accountID); err != nil {
		s.logger.Error("failed to create question", slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Info("question created",
		slog.Int("questionID", question.ID),
		slog.Int("accountID", accountID),
	)
	return question, nil
}

// List returns the window of questions described by the validated
// pagination pair. The window is forwarded verbatim — limit=0 legitimately
// returns an empty page, and no maximum is imposed.
func (s *QuestionService) List(ctx context.Context, p pagination.Pagination) ([]model.Question, error) {
	questions, err := s.questions.ListQuestions(ctx, repository.ListOptions{
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		s.logger.Error("failed to list questions", slog.String("error", err.Error()))
		return nil, err
	}
	return questions, nil
}

// Update screens the replacement text and overwrites the question.
//
// Any authenticated account may update any question; the authoring
// account is not consulted.
func (s *QuestionService) Update(ctx context.Context, id int, nq model.NewQuestion) (*model.Question, error) {
	title, content, err := s.moderate(ctx, nq.Title, nq.Content)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		ID:      id,
		Title:   title,
		Content: content,
		Tags:    nq.Tags,
	}
	if err := s.questions.UpdateQuestion(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info("question updated", slog.Int("questionID", id))
	return question, nil
}

// Delete removes a question. Not moderated, not ownership-checked.
func (s *QuestionService) Delete(ctx context.Context, id int) error {
	if err := s.questions.DeleteQuestion(ctx, id); err != nil {
		return err
	}
	s.logger.Info("question deleted", slog.Int("questionID", id))
	return nil
}

// moderate screens the title and content, returning the text to persist for
// each. The calls are sequential and synchronous; the first failure aborts
// the write before anything reaches storage.
func (s *QuestionService) moderate(ctx context.Context, title, content string) (string, string, error) {
	titleRes, err := s.moderator.Check(ctx, title)
	if err != nil {
		return "", "", err
	}
	contentRes, err := s.moderator.Check(ctx, content)
	if err != nil {
		return "", "", err
	}

	if titleRes.Verdict == moderation.VerdictContainsProfanity ||
		contentRes.Verdict == moderation.VerdictContainsProfanity {
		s.logger.Info("profanity censored in question text")
	}
	return titleRes.Text(), contentRes.Text(), nil
}
