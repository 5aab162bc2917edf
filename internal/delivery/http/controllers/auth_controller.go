package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gatherly/internal/delivery/http/helpers"
	"gatherly/internal/domain"
)

// AuthController handles signup and login.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUpRequest is the request body for POST /auth/signup.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Email) == "" {
		errs = append(errs, "email is required")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SignUpSuccessResponse is the success response envelope for POST /auth/signup (201).
type SignUpSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SignUp godoc
// @Summary Register a new user
// @Description Creates an account. Email must be unique; password must be at least 8 characters.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Account data"
// @Success 201 {object} controllers.SignUpSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "email already in use")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the data payload for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginSuccessResponse is the success response envelope for POST /auth/login (200).
type LoginSuccessResponse struct {
	Data  LoginResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a Bearer token. Unknown email and wrong password are indistinguishable.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} controllers.LoginSuccessResponse "data contains the token and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, User: user})
}
