package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osu-parks/parks-api/internal/api/shared"
	"github.com/osu-parks/parks-api/internal/platform/logger"
	"github.com/osu-parks/parks-api/internal/service/auth"
)

// ClientAuthenticator checks the credentials a client exchanges for a token.
type ClientAuthenticator interface {
	Authenticate(ctx context.Context, clientID, secret string) error
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authenticator ClientAuthenticator
	jwtService    auth.JWTService
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	authenticator ClientAuthenticator,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *AuthHandler {
	if authenticator == nil || jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("authenticator and jwtService are required for AuthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authenticator: authenticator,
		jwtService:    jwtService,
		validator:     newValidator(),
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Token handles POST /auth/token, exchanging client credentials for a bearer token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TokenRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, SanitizeValidationError(err))
		return
	}

	if err := h.authenticator.Authenticate(r.Context(), req.ClientID, req.ClientSecret); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), req.ClientID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	log.Info("token issued", slog.String("client_id", req.ClientID))
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}
