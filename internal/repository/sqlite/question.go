package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sakif/qna-service/internal/apperror"
	"github.com/sakif/qna-service/internal/model"
	"github.com/sakif/qna-service/internal/repository"
)

// compile-time check that *DB implements repository.QuestionRepository
var _ repository.QuestionRepository = (*DB)(nil)

// CreateQuestion inserts a question authored by accountID and fills in the
// generated ID. Text fields arrive already moderated.
//
// The authoring account is recorded but never consulted on later mutations.
func (db *DB) CreateQuestion(ctx context.Context, question *model.Question, accountID int) error {
	tags, err := encodeTags(question.Tags)
	if err != nil {
		return apperror.Storage(fmt.Errorf("sqlite: encoding tags: %w", err))
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO questions (title, content, tags, account_id) VALUES (?, ?, ?, ?)`,
		question.Title,
		question.Content,
		tags,
		accountID,
	)
	if err != nil {
		return apperror.Storage(fmt.Errorf("sqlite: inserting question: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperror.Storage(fmt.Errorf("sqlite: reading question id: %w", err))
	}
	question.ID = int(id)

	return nil
}

// ListQuestions returns a window of questions, newest first. The window is
// passed straight into LIMIT/OFFSET — bounds were validated upstream and no
// further clamping happens here.
func (db *DB) ListQuestions(ctx context.Context, opts repository.ListOptions) ([]model.Question, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, content, tags
		 FROM questions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		opts.Limit,
		opts.Offset,
	)
	if err != nil {
		return nil, apperror.Storage(fmt.Errorf("sqlite: listing questions: %w", err))
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		var tags sql.NullString
		if err := rows.Scan(&q.ID, &q.Title, &q.Content, &tags); err != nil {
			return nil, apperror.Storage(fmt.Errorf("sqlite: scanning question row: %w", err))
		}
		if q.Tags, err = decodeTags(tags); err != nil {
			return nil, apperror.Storage(fmt.Errorf("sqlite: decoding tags: %w", err))
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage(fmt.Errorf("sqlite: iterating questions: %w", err))
	}

	return questions, nil
}

// UpdateQuestion replaces the title, content and tags of an existing
// question. Returns apperror.ErrNotFound when the ID matches nothing.
func (db *DB) UpdateQuestion(ctx context.Context, question *model.Question) error {
	tags, err := encodeTags(question.Tags)
	if err != nil {
		return apperror.Storage(fmt.Errorf("sqlite: encoding tags: %w", err))
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE questions SET title = ?, content = ?, tags = ? WHERE id = ?`,
		question.Title,
		question.Content,
		tags,
		question.ID,
	)
	if err != nil {
		return apperror.Storage(fmt.Errorf("sqlite: updating question %d: %w", question.ID, err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Storage(fmt.Errorf("sqlite: checking rows affected: %w", err))
	}
	if affected == 0 {
		return apperror.NotFound("question", question.ID)
	}

	return nil
}

// DeleteQuestion removes a question. Same RowsAffected pattern as update.
func (db *DB) DeleteQuestion(ctx context.Context, id int) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return apperror.Storage(fmt.Errorf("sqlite: deleting question %d: %w", id, err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Storage(fmt.Errorf("sqlite: checking rows affected: %w", err))
	}
	if affected == 0 {
		return apperror.NotFound("question", id)
	}

	return nil
}

// encodeTags serializes tags as JSON for the nullable TEXT column; nil tags
// are stored as NULL so "no tags" and "empty list" round-trip distinctly.
func encodeTags(tags []string) (any, error) {
	if tags == nil {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
