package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/qna-service/internal/apperror"
	"github.com/sakif/qna-service/internal/model"
	"github.com/sakif/qna-service/internal/repository"
)

// compile-time check that *DB implements repository.AccountRepository
var _ repository.AccountRepository = (*DB)(nil)

// CreateAccount inserts a new identity record and fills in its ID.
//
// The email column carries a UNIQUE constraint; a constraint violation (two
// concurrent registrations of the same email included) is translated into
// apperror.EmailExists rather than leaking the SQL error.
func (db *DB) CreateAccount(ctx context.Context, account *model.Account) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO accounts (email, password_hash) VALUES (?, ?)`,
		account.Email,
		account.PasswordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.EmailExists()
		}
		return apperror.Storage(fmt.Errorf("sqlite: inserting account: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperror.Storage(fmt.Errorf("sqlite: reading account id: %w", err))
	}
	account.ID = int(id)

	return nil
}

// GetAccountByEmail fetches an account, hash included, for credential
// verification. Returns apperror.ErrNotFound when the email is unknown —
// the service layer is responsible for not letting that distinction reach
// the client.
func (db *DB) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var a model.Account

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM accounts WHERE email = ?`,
		email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "account not found"}
		}
		return nil, apperror.Storage(fmt.Errorf("sqlite: getting account by email: %w", err))
	}

	return &a, nil
}
