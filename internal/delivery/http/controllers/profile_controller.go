package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"gatherly/internal/delivery/http/helpers"
	"gatherly/internal/delivery/http/middleware"
	"gatherly/internal/domain"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

// ProfileController handles profile routes.
type ProfileController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService) *ProfileController {
	return &ProfileController{
		Logger:  logger,
		Service: svc,
	}
}

// ProfileSuccessResponse is the success response envelope for profile routes.
type ProfileSuccessResponse struct {
	Data  *domain.Profile   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateProfileRequest is the request body for POST /profiles. All fields optional.
type CreateProfileRequest struct {
	Bio         *string `json:"bio"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

// UpdateProfileRequest is the request body for PATCH /profiles/{profileID}.
// Omitted fields are unchanged.
type UpdateProfileRequest struct {
	Bio         *string `json:"bio"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

// GetMyProfile godoc
// @Summary Get my profile
// @Description Returns the authenticated user's profile.
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/me [get]
func (c *ProfileController) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile, err := c.Service.GetMyProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

// GetProfile godoc
// @Summary Get a profile by ID
// @Description Returns a profile for public viewing.
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param profileID path string true "Profile ID (UUID)"
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/{profileID} [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("profileID")
	if profileID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing profileID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile, err := c.Service.GetProfile(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

// CreateProfile godoc
// @Summary Create my profile
// @Description Creates the authenticated user's profile. Each user has at most one; a second create returns 409 so the client can switch to update.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateProfileRequest true "Profile fields (all optional)"
// @Success 201 {object} controllers.ProfileSuccessResponse "data contains the created profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles [post]
func (c *ProfileController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	profile, err := c.Service.CreateProfile(r.Context(), userID, req.Bio, req.PhoneNumber, req.Address)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "profile already exists for user")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, profile)
}

// UpdateProfile godoc
// @Summary Update a profile
// @Description Updates the profile's fields. Only the owner can update; a missing profile and someone else's profile both return 403.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileID path string true "Profile ID (UUID)"
// @Param body body UpdateProfileRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the updated profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/{profileID} [patch]
func (c *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("profileID")
	if profileID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing profileID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	profile, err := c.Service.UpdateProfile(r.Context(), profileID, userID, req.Bio, req.PhoneNumber, req.Address)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "access to resource denied")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

// DeleteProfile godoc
// @Summary Delete a profile
// @Description Deletes the profile. Only the owner can delete; a missing profile and someone else's profile both return 403.
// @Tags profiles
// @Security BearerAuth
// @Param profileID path string true "Profile ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/{profileID} [delete]
func (c *ProfileController) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("profileID")
	if profileID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing profileID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteProfile(r.Context(), profileID, userID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "access to resource denied")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateAvatar godoc
// @Summary Upload my avatar
// @Description Uploads an avatar image (multipart field "file", max 5 MiB) to blob storage and stores the URL on the caller's profile. The profile must already exist.
// @Tags profiles
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Avatar image"
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the updated profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/avatar [put]
func (c *ProfileController) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing or invalid file field")
		return
	}
	defer file.Close()

	profile, err := c.Service.UpdateAvatar(r.Context(), userID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}
