package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/felixdarko/eventplanner-api/apperror"
	"github.com/felixdarko/eventplanner-api/middleware"
	"github.com/felixdarko/eventplanner-api/models"
	"github.com/felixdarko/eventplanner-api/store"
	"github.com/felixdarko/eventplanner-api/utils"
)

const (
	dbTimeout = 5 * time.Second

	// verificationTokenTTL bounds how long an email verification link works.
	verificationTokenTTL = 24 * time.Hour

	// resetCodeTTL bounds how long a password reset code is accepted.
	resetCodeTTL = 15 * time.Minute
)

// Mailer sends the transactional emails the auth flow needs. Sending is
// best-effort; a failed send never aborts the request that triggered it.
type Mailer interface {
	SendWelcomeEmail(user *models.User, verificationToken string) error
	SendResetCodeEmail(user *models.User, resetCode int) error
}

// AuthHandler serves registration, sign-in, profile and password reset.
type AuthHandler struct {
	users    store.UserStore
	mailer   Mailer
	secret   string
	tokenTTL time.Duration
}

// NewAuthHandler wires the auth routes' dependencies.
func NewAuthHandler(users store.UserStore, mailer Mailer, secret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, mailer: mailer, secret: secret, tokenTTL: tokenTTL}
}

// RegisterInput is the request body for registration.
type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// SignInInput is the request body for sign-in.
type SignInInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileInput allows partial profile updates.
type UpdateProfileInput struct {
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// ForgotPasswordInput carries the account email.
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput carries the reset code and the new password. The code
// is untyped so clients may send it as a number or a string.
type ResetPasswordInput struct {
	Email     string `json:"email" binding:"required,email"`
	ResetCode any    `json:"resetCode" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// resetCodeString renders the client-supplied reset code as a string,
// tolerating both JSON numbers and strings.
func resetCodeString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case json.Number:
		return c.String()
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Register creates a new account, issues a token and sends the welcome
// email with a verification link.
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperror.NewValidation(err.Error(), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	now := time.Now().UTC()
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		fail(c, apperror.NewInternal("Failed to hash password", err))
		return
	}

	user := &models.User{
		ID:                      primitive.NewObjectID(),
		FirstName:               input.FirstName,
		LastName:                input.LastName,
		Email:                   input.Email,
		Phone:                   input.Phone,
		PasswordHash:            hash,
		IsVerified:              false,
		VerificationToken:       uuid.NewString(),
		VerificationTokenExpire: now.Add(verificationTokenTTL),
		CreatedAt:               now,
	}

	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			fail(c, apperror.NewConflict("User already exists"))
			return
		}
		fail(c, apperror.NewInternal("Failed to create user", err))
		return
	}

	token, err := utils.GenerateJWT(h.secret, user.ID.Hex(), user.Email, h.tokenTTL)
	if err != nil {
		fail(c, apperror.NewInternal("Could not generate token", err))
		return
	}

	// best-effort: the user record exists either way, the mailer logs failures
	_ = h.mailer.SendWelcomeEmail(user, user.VerificationToken)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

// SignIn authenticates with email and password and returns a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var input SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperror.NewValidation(err.Error(), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, input.Email)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewInvalidCredentials())
		return
	}
	if err != nil {
		fail(c, apperror.NewInternal("Database error", err))
		return
	}

	if err := utils.CheckPassword(user.PasswordHash, input.Password); err != nil {
		fail(c, apperror.NewInvalidCredentials())
		return
	}

	token, err := utils.GenerateJWT(h.secret, user.ID.Hex(), user.Email, h.tokenTTL)
	if err != nil {
		fail(c, apperror.NewInternal("Could not generate token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sign in successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// Profile returns the authenticated user's public fields.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	user, err := h.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewNotFound("User not found"))
		return
	}
	if err != nil {
		fail(c, apperror.NewInternal("Database error", err))
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// UpdateMe applies a partial profile update. Changing the email re-checks
// uniqueness; a taken address is rejected.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperror.NewValidation(err.Error(), err))
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	user, err := h.users.UpdateProfile(ctx, userID, store.ProfilePatch{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	})
	if errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewNotFound("User not found"))
		return
	}
	if errors.Is(err, store.ErrDuplicateEmail) {
		fail(c, apperror.NewConflict("Email already in use"))
		return
	}
	if err != nil {
		fail(c, apperror.NewInternal("Failed to update profile", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user.Public(),
	})
}

// VerifyEmail marks the account behind a verification link as verified.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if _, err := h.users.MarkVerified(ctx, token); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, apperror.NewValidation("Invalid or expired verification link", nil))
			return
		}
		fail(c, apperror.NewInternal("Failed to verify email", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// ForgotPassword stores a fresh 6-digit reset code on the account and
// emails it.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperror.NewValidation(err.Error(), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, input.Email)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewNotFound("User not found"))
		return
	}
	if err != nil {
		fail(c, apperror.NewInternal("Database error", err))
		return
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		fail(c, apperror.NewInternal("Could not generate reset code", err))
		return
	}

	if err := h.users.SetResetCode(ctx, user.ID, code, time.Now().UTC().Add(resetCodeTTL)); err != nil {
		fail(c, apperror.NewInternal("Could not store reset code", err))
		return
	}

	// best-effort: the mailer logs the code when SMTP is unconfigured
	_ = h.mailer.SendResetCodeEmail(user, code)

	c.JSON(http.StatusOK, gin.H{"message": "Reset code sent to your email"})
}

// ResetPassword verifies the single-use reset code and stores the new
// password. Codes are compared as strings to tolerate numeric clients.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperror.NewValidation(err.Error(), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, input.Email)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewNotFound("User not found"))
		return
	}
	if err != nil {
		fail(c, apperror.NewInternal("Database error", err))
		return
	}

	if user.ResetCode == 0 || user.ResetCodeExpire.Before(time.Now().UTC()) {
		fail(c, apperror.NewInvalidResetCode("Invalid or expired reset code"))
		return
	}
	if strconv.Itoa(user.ResetCode) != resetCodeString(input.ResetCode) {
		fail(c, apperror.NewInvalidResetCode("Invalid reset code"))
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		fail(c, apperror.NewInternal("Failed to hash password", err))
		return
	}

	if err := h.users.ResetPassword(ctx, user.ID, hash); err != nil {
		fail(c, apperror.NewInternal("Could not reset password", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
