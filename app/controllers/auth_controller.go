// Package controllers maps the HTTP surface onto the services. Handlers
// bind and validate input, call one service method, and write one of the
// two JSON envelope families.
package controllers

import (
	"net/http"
	"time"

	"github.com/inbasree/weddingvista/app/services"
	"github.com/inbasree/weddingvista/pkg/bind"
	"github.com/inbasree/weddingvista/pkg/logger"
	"github.com/inbasree/weddingvista/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Signup handles POST /auth/signup.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required,min=2,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Role     string `json:"role" validate:"nullable,in=user,admin"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.StatusError(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	_, err := c.service.Signup(r.Context(), body.Username, body.Email, body.Password, body.Role)
	switch {
	case err == nil:
		response.Status(w, http.StatusCreated, "User registered successfully", nil)
	case err == services.ErrEmailTaken:
		response.StatusError(w, http.StatusBadRequest, "User already exists")
	default:
		logger.WithCtx(r.Context()).Error("signup failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// setTokenCookie attaches the token as an http-only cookie, the secondary
// transport next to the Authorization header.
func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Login handles POST /auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.StatusError(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.Login(r.Context(), body.Email, body.Password)
	switch {
	case err == nil:
		setTokenCookie(w, token)
		response.Status(w, http.StatusOK, "Login successful", map[string]interface{}{
			"token": token,
			"role":  user.Role,
		})
	case err == services.ErrInvalidCredentials:
		response.StatusError(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// GoogleLogin handles POST /auth/google-login.
func (c *AuthController) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name" validate:"required,min=1,max=100"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.StatusError(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.GoogleLogin(r.Context(), body.Email, body.Name)
	if err != nil {
		logger.WithCtx(r.Context()).Error("google login failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	setTokenCookie(w, token)
	response.Status(w, http.StatusOK, "", map[string]interface{}{
		"token": token,
		"role":  user.Role,
	})
}

// ForgotPassword handles POST /auth/forgot-password. The response is the
// same whether or not the email is registered.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.StatusError(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c.service.RequestPasswordReset(r.Context(), body.Email)
	response.Status(w, http.StatusOK, "If an account exists for this email, an OTP has been sent", nil)
}

// ResetPassword handles POST /auth/reset-password.
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string `json:"email" validate:"required,email"`
		OTP         string `json:"otp" validate:"required,digits=6"`
		NewPassword string `json:"newPassword" validate:"required,min=6"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.StatusError(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	err := c.service.ResetPassword(r.Context(), body.Email, body.OTP, body.NewPassword)
	switch {
	case err == nil:
		response.Status(w, http.StatusOK, "Password reset successful", nil)
	case err == services.ErrInvalidOTP:
		response.StatusError(w, http.StatusBadRequest, "Invalid or expired OTP")
	default:
		logger.WithCtx(r.Context()).Error("password reset failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// AllUsers handles GET /auth/all-users (admin only).
func (c *AuthController) AllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.AllUsers(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list users failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	response.Status(w, http.StatusOK, "", map[string]interface{}{
		"users":      users,
		"serverTime": time.Now().UTC().Format(time.RFC3339),
	})
}
