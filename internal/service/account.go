// Package service contains the business logic layer: it sits between the
// HTTP handlers and the repositories, and knows nothing about either HTTP
// or SQL.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/qna-service/internal/apperror"
	"github.com/sakif/qna-service/internal/auth"
	"github.com/sakif/qna-service/internal/model"
	"github.com/sakif/qna-service/internal/repository"
)

// AccountService handles registration and login.
type AccountService struct {
	accounts  repository.AccountRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

// NewAccountService creates an AccountService with all dependencies
// injected.
func NewAccountService(
	accounts repository.AccountRepository,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		accounts:  accounts,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates an account for the given credentials.
//
// The plaintext password exists only on this call's stack: it is hashed
// immediately and never stored or logged. A taken email surfaces as
// apperror.EmailExists.
func (s *AccountService) Register(ctx context.Context, email, password string) (*model.Account, error) {
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/account: hashing password: %w", err)
	}

	account := &model.Account{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", slog.Int("accountID", account.ID))
	return account, nil
}

// Login verifies the credentials and issues a session token.
//
// Unknown email and wrong password both return apperror.InvalidCredentials.
// On the unknown-email path we still burn a dummy hash verification so the
// two failures cost comparable wall-clock time — response timing must not
// reveal whether the email is registered.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.passwords.DummyVerify(password)
			s.logger.Warn("login failed", slog.String("reason", "unknown email"))
			return "", apperror.InvalidCredentials()
		}
		return "", err
	}

	if err := s.passwords.Verify(account.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("login failed",
				slog.Int("accountID", account.ID),
				slog.String("reason", "password mismatch"),
			)
			return "", apperror.InvalidCredentials()
		}
		// Undecodable stored hash — a data problem, not a bad password.
		return "", apperror.Storage(fmt.Errorf("service/account: verifying password: %w", err))
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return "", fmt.Errorf("service/account: issuing token for account %d: %w", account.ID, err)
	}

	s.logger.Info("account logged in", slog.Int("accountID", account.ID))
	return token, nil
}
