// Package repository defines the storage interfaces the services depend on.
//
// The core never issues raw queries; it calls these operations with
// already-validated arguments. Services receive the interfaces, not the
// concrete SQLite types, so tests substitute in-memory fakes and the engine
// can be swapped without touching business logic.
package repository

import (
	"context"

	"github.com/sakif/qna-service/internal/model"
)

// ListOptions is the bounded-read window, produced by the pagination
// validator. Values are passed through to the store verbatim.
type ListOptions struct {
	Limit  int
	Offset int
}

// AccountRepository persists identity records.
type AccountRepository interface {
	// CreateAccount stores a new account and fills in its ID. Returns
	// apperror.EmailExists when the email is already registered.
	CreateAccount(ctx context.Context, account *model.Account) error
	// GetAccountByEmail returns apperror.ErrNotFound when no account has
	// the given email.
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
}

// QuestionRepository persists questions. Writes record the authoring
// account; reads are bounded by ListOptions.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question *model.Question, accountID int) error
	ListQuestions(ctx context.Context, opts ListOptions) ([]model.Question, error)
	UpdateQuestion(ctx context.Context, question *model.Question) error
	DeleteQuestion(ctx context.Context, id int) error
}

// AnswerRepository persists answers to existing questions.
type AnswerRepository interface {
	CreateAnswer(ctx context.Context, answer *model.Answer, accountID int) error
}
