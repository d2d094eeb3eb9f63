package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/qna-service/internal/model"
)

// accountService is the slice of the service layer the account handler
// needs. Declared here so tests can substitute a fake.
type accountService interface {
	Register(ctx context.Context, email, password string) (*model.Account, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// AccountHandler serves registration and login — the two routes that
// bypass the auth guard and talk to the credential manager directly.
type AccountHandler struct {
	accounts accountService
	logger   *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts accountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// credentials is the request payload for both registration and login.
// The plaintext password is decoded here, handed to the service, and
// never logged or echoed back.
type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates an account.
//
// HTTP: POST /registration
// Responses: 201 on success, 400 on bad payload, 409 on taken email.
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeValid(r, &creds); err != nil {
		writeError(w, err)
		return
	}

	account, err := h.accounts.Register(r.Context(), creds.Email, creds.Password)
	if err != nil {
		h.logger.Warn("registration failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	// The response carries id and email only; the hash is excluded by the
	// model's json tags and the plaintext was never stored.
	writeJSON(w, http.StatusCreated, account)
}

// tokenResponse wraps the session token issued at login.
type tokenResponse struct {
	Token string `json:"token"`
}

// HandleLogin verifies credentials and returns a session token.
//
// HTTP: POST /login
// Responses: 200 {"token":...}, 400 on bad payload, 401 on bad credentials
// (identical body whether the email is unknown or the password is wrong).
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeValid(r, &creds); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.accounts.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
