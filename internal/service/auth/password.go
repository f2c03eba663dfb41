package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/osu-parks/parks-api/internal/config"
	"github.com/osu-parks/parks-api/internal/platform/logger"
	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// HashSecret returns the bcrypt hash of secret at cost, for use as the
// configured client secret hash. Costs outside bcrypt's range use the default.
func HashSecret(secret string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ClientAuthenticator checks client credentials exchanged for access tokens.
type ClientAuthenticator struct {
	clientID   string
	secretHash string
	verifier   PasswordVerifier
}

// NewClientAuthenticator creates a ClientAuthenticator for the configured client.
func NewClientAuthenticator(cfg config.AuthConfig, verifier PasswordVerifier) *ClientAuthenticator {
	if verifier == nil {
		verifier = NewBcryptVerifier()
	}
	return &ClientAuthenticator{
		clientID:   cfg.ClientID,
		secretHash: cfg.ClientSecretHash,
		verifier:   verifier,
	}
}

// Authenticate returns ErrInvalidCredentials unless clientID and secret match.
// The secret is always compared so both failure paths cost the same.
func (a *ClientAuthenticator) Authenticate(ctx context.Context, clientID, secret string) error {
	idOK := subtle.ConstantTimeCompare([]byte(clientID), []byte(a.clientID)) == 1
	secretErr := a.verifier.Compare(a.secretHash, secret)

	if !idOK || secretErr != nil {
		logger.FromContext(ctx).Debug("client authentication failed",
			slog.Bool("client_id_match", idOK))
		return ErrInvalidCredentials
	}
	return nil
}
