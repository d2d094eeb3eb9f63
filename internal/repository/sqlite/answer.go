package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/sakif/qna-service/internal/apperror"
	"github.com/sakif/qna-service/internal/model"
	"github.com/sakif/qna-service/internal/repository"
)

// compile-time check that *DB implements repository.AnswerRepository
var _ repository.AnswerRepository = (*DB)(nil)

// CreateAnswer inserts an answer authored by accountID and fills in the
// generated ID. The question must exist — the foreign key rejects answers
// to deleted or never-created questions, which we report as not-found
// rather than a storage failure.
func (db *DB) CreateAnswer(ctx context.Context, answer *model.Answer, accountID int) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO answers (content, question_id, account_id) VALUES (?, ?, ?)`,
		answer.Content,
		answer.QuestionID,
		accountID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return apperror.NotFound("question", answer.QuestionID)
		}
		return apperror.Storage(fmt.Errorf("sqlite: inserting answer: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperror.Storage(fmt.Errorf("sqlite: reading answer id: %w", err))
	}
	answer.ID = int(id)

	return nil
}
