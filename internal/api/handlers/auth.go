package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ezzcrafts/testimania/internal/api/dto"
	"github.com/ezzcrafts/testimania/internal/api/middleware"
	"github.com/ezzcrafts/testimania/internal/auth"
	"github.com/ezzcrafts/testimania/internal/database/models"
)

type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.FailValidation(errs))
		return
	}

	err := h.authService.Signup(r.Context(), auth.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			writeJSON(w, http.StatusConflict, dto.Fail("Username is already taken"))
		case errors.Is(err, auth.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, dto.Fail("User already exists with this email"))
		case errors.Is(err, auth.ErrMailDispatch):
			h.logger.Error("verification mail dispatch failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to send verification mail"))
		default:
			h.logger.Error("signup failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, dto.Fail("Error in registering user"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.OK("User registered successfully. Please verify your email"))
}

// Verify handles POST /verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.FailValidation(errs))
		return
	}

	result, err := h.authService.Verify(r.Context(), req.Username, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, dto.Fail("User not found"))
		case errors.Is(err, auth.ErrInvalidCode):
			writeJSON(w, http.StatusBadRequest, dto.Fail("Incorrect code"))
		case errors.Is(err, auth.ErrCodeExpired):
			writeJSON(w, http.StatusBadRequest, dto.Fail("Code expired, signup again to get a new one"))
		default:
			h.logger.Error("verify failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, dto.Fail("Error verifying user"))
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.VerifyResponse{
		Response:    dto.OK("User verified successfully"),
		SigninToken: result.SigninToken,
	})
}

// ResendVerification handles POST /resend-verification-mail
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.FailValidation(errs))
		return
	}

	err := h.authService.ResendVerification(r.Context(), req.Email, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, dto.Fail("No user exists with this email"))
		case errors.Is(err, auth.ErrMailDispatch):
			h.logger.Error("verification mail dispatch failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to send verification mail"))
		default:
			h.logger.Error("resend verification failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, dto.Fail("Error resending verification mail"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.OK("Verification code sent to your email"))
}

// CheckUniqueUsername handles GET /check-unique-username?username=
func (h *AuthHandler) CheckUniqueUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	var req = dto.SignupRequest{Username: username}
	if msg, ok := req.Validate()["username"]; ok {
		writeJSON(w, http.StatusBadRequest, dto.Fail(msg))
		return
	}

	available, err := h.authService.CheckUsernameAvailable(r.Context(), username)
	if err != nil {
		h.logger.Error("username check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Error checking username"))
		return
	}

	if !available {
		writeJSON(w, http.StatusConflict, dto.Fail("Username is already taken"))
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Username is available"))
}

// VerifyEmail handles POST /verify-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	user, err := h.authService.LookupEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, dto.Fail("No user exists with this email"))
			return
		}
		h.logger.Error("email lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Error looking up email"))
		return
	}

	writeJSON(w, http.StatusOK, dto.VerifyEmailResponse{
		Response:   dto.OK("User found with this email"),
		IsVerified: user.IsVerified,
		Username:   user.Username,
	})
}

// SignIn handles POST /signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.FailValidation(errs))
		return
	}

	resp, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, dto.Fail("Invalid credentials"))
		case errors.Is(err, auth.ErrNotVerified):
			writeJSON(w, http.StatusForbidden, dto.Fail("Please verify your email first"))
		default:
			h.logger.Error("signin failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, dto.Fail("Error signing in"))
		}
		return
	}

	h.writeSession(w, resp)
}

// SignInWithToken handles POST /signin/token, consuming the single-use token
// issued by a successful verification.
func (h *AuthHandler) SignInWithToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	resp, err := h.authService.SignInWithToken(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenConsumed) || errors.Is(err, auth.ErrUserNotFound) {
			writeJSON(w, http.StatusUnauthorized, dto.Fail("Invalid or expired signin token"))
			return
		}
		h.logger.Error("token signin failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Error signing in"))
		return
	}

	h.writeSession(w, resp)
}

// Me handles GET /me, returning the current session's user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, dto.Fail("User not found"))
			return
		}
		h.logger.Error("me lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Error fetching user"))
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Response: dto.OK("User found"),
		User:     userToDTO(user),
	})
}

// SignOut handles POST /signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, dto.OK("Signed out"))
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, resp *auth.AuthResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    resp.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400,
	})

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Response: dto.OK("Signed in successfully"),
		Token:    resp.Token,
		User:     userToDTO(resp.User),
	})
}

func userToDTO(user *models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:         user.ID.String(),
		Username:   user.Username,
		Email:      user.Email,
		IsVerified: user.IsVerified,
		Image:      user.Image,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
