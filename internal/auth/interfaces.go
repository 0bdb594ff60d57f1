package auth

import (
	"context"

	"github.com/ezzcrafts/testimania/internal/database/models"
	"github.com/google/uuid"
)

// Authenticator defines the credential and verification operations.
type Authenticator interface {
	Signup(ctx context.Context, input SignupInput) error
	Verify(ctx context.Context, username, code string) (*VerifyResult, error)
	ResendVerification(ctx context.Context, email, username string) error
	CheckUsernameAvailable(ctx context.Context, username string) (bool, error)
	LookupEmail(ctx context.Context, email string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*AuthResponse, error)
	SignInWithToken(ctx context.Context, token string) (*AuthResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TokenService defines the session token operations.
type TokenService interface {
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator = (*Service)(nil)
	_ TokenService  = (*JWTService)(nil)
)
