package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gatherly/internal/delivery/http/helpers"
	"gatherly/internal/delivery/http/middleware"
	"gatherly/internal/domain"
)

// UserController handles account routes.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// UserSuccessResponse is the success response envelope for account routes.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetMe godoc
// @Summary Get my account
// @Description Returns the authenticated user's account.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UserSuccessResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateMeRequest is the request body for PATCH /users/me. Omitted fields are unchanged.
type UpdateMeRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Validate implements Validator.
func (u UpdateMeRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.Email != nil && strings.TrimSpace(*u.Email) == "" {
		errs = append(errs, "email must not be empty")
	}
	return errs
}

// UpdateMe godoc
// @Summary Update my account
// @Description Updates the authenticated user's name and/or email.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateMeRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UserSuccessResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [patch]
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateMeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.UpdateAccount(r.Context(), userID, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "email already in use")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
