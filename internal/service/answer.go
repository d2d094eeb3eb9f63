package service

import (
	"context"
	"log/slog"

	"github.com/sakif/qna-service/internal/model"
	"github.com/sakif/qna-service/internal/repository"
)

// AnswerService handles moderated answer writes.
type AnswerService struct {
	answers   repository.AnswerRepository
	moderator Moderator
	logger    *slog.Logger
}

// NewAnswerService creates an AnswerService.
func NewAnswerService(answers repository.AnswerRepository, moderator Moderator, logger *slog.Logger) *AnswerService {
	return &AnswerService{
		answers:   answers,
		moderator: moderator,
		logger:    logger,
	}
}

// Add screens and persists an answer to an existing question, authored by
// accountID. A classifier failure aborts the write; profanity is censored
// and the write proceeds.
func (s *AnswerService) Add(ctx context.Context, accountID int, na model.NewAnswer) (*model.Answer, error) {
	res, err := s.moderator.Check(ctx, na.Content)
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		Content:    res.Text(),
		QuestionID: na.QuestionID,
	}
	if err := s.answers.CreateAnswer(ctx, answer, accountID); err != nil {
		s.logger.Error("failed to create answer",
			slog.Int("questionID", na.QuestionID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("answer created",
		slog.Int("answerID", answer.ID),
		slog.Int("questionID", answer.QuestionID),
		slog.Int("accountID", accountID),
	)
	return answer, nil
}
