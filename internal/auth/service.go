package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ezzcrafts/testimania/internal/database/models"
	"github.com/ezzcrafts/testimania/internal/mail"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCode        = errors.New("incorrect verification code")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("user is not verified")
	ErrMailDispatch       = errors.New("failed to send verification mail")
)

type Service struct {
	db           *gorm.DB
	jwt          *JWTService
	mailer       mail.Mailer
	signinTokens SigninTokenStore
}

func NewService(db *gorm.DB, jwt *JWTService, mailer mail.Mailer, signinTokens SigninTokenStore) *Service {
	return &Service{db: db, jwt: jwt, mailer: mailer, signinTokens: signinTokens}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// VerifyResult carries the single-use signin token issued after a successful
// verification, replacing the old flow that round-tripped the plaintext
// password through the client.
type VerifyResult struct {
	User        *models.User
	SigninToken string
}

// Signup creates a pending user and mails a verification code. A verified
// holder of the username or email is a conflict; an unverified holder of the
// email gets its password and code overwritten so an abandoned signup can be
// retried.
func (s *Service) Signup(ctx context.Context, input SignupInput) error {
	var verified models.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND is_verified = ?", input.Username, true).
		First(&verified).Error
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return err
	}

	code, err := GenerateVerifyCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(CodeExpiry)

	var existing models.User
	err = s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error
	switch {
	case err == nil:
		if existing.IsVerified {
			return ErrEmailTaken
		}
		// Idempotent signup retry: rotate the pending credentials.
		err = s.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
			"username":           input.Username,
			"password_hash":      hash,
			"verify_code":        code,
			"verify_code_expiry": expiry,
		}).Error
		if err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user := models.User{
			Username:         input.Username,
			Email:            input.Email,
			PasswordHash:     hash,
			VerifyCode:       code,
			VerifyCodeExpiry: expiry,
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return err
		}
	default:
		return err
	}

	// The record stays unverified if dispatch fails, so a failed signup never
	// leaves a verified-looking state behind.
	if err := s.mailer.SendVerificationCode(ctx, input.Email, input.Username, code); err != nil {
		return fmt.Errorf("%w: %w", ErrMailDispatch, err)
	}

	return nil
}

// Verify flips the verified flag when the code matches and has not expired,
// and hands back a single-use signin token. The code is not cleared, so a
// later verify call with the now-stale code fails.
func (s *Service) Verify(ctx context.Context, username, code string) (*VerifyResult, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.VerifyCode != code {
		return nil, ErrInvalidCode
	}
	if time.Now().After(user.VerifyCodeExpiry) {
		return nil, ErrCodeExpired
	}

	if !user.IsVerified {
		if err := s.db.WithContext(ctx).Model(&user).Update("is_verified", true).Error; err != nil {
			return nil, err
		}
		user.IsVerified = true
	}

	result := &VerifyResult{User: &user}
	if s.signinTokens != nil {
		token, err := s.signinTokens.Issue(ctx, user.ID)
		if err != nil {
			// Verification itself succeeded; the client can still sign in
			// with its password.
			return result, nil
		}
		result.SigninToken = token
	}
	return result, nil
}

// ResendVerification regenerates the code and redispatches it. The new code
// is persisted only after dispatch succeeds; a dispatch failure is loud.
func (s *Service) ResendVerification(ctx context.Context, email, username string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := GenerateVerifyCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(CodeExpiry)

	if err := s.mailer.SendVerificationCode(ctx, email, username, code); err != nil {
		return fmt.Errorf("%w: %w", ErrMailDispatch, err)
	}

	return s.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"verify_code":        code,
		"verify_code_expiry": expiry,
	}).Error
}

// CheckUsernameAvailable reports whether a username is free. Unverified
// holders do not block reuse, so abandoned signups can retry.
func (s *Service) CheckUsernameAvailable(ctx context.Context, username string) (bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND is_verified = ?", username, true).
		First(&user).Error
	if err == nil {
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	return false, err
}

// LookupEmail resolves an email to its account's username and verified flag.
func (s *Service) LookupEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SignIn matches the password against the stored hash and issues a session
// token. Absent user and wrong password collapse into one error.
func (s *Service) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: &user}, nil
}

// SignInWithToken consumes a post-verification signin token and issues a
// session for its user.
func (s *Service) SignInWithToken(ctx context.Context, token string) (*AuthResponse, error) {
	if s.signinTokens == nil {
		return nil, ErrTokenConsumed
	}

	userID, err := s.signinTokens.Consume(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessionToken, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: sessionToken, User: user}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
