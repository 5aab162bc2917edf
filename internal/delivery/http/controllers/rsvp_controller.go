package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"gatherly/internal/delivery/http/helpers"
	"gatherly/internal/delivery/http/middleware"
	"gatherly/internal/domain"
)

// RSVPController handles attendance routes.
type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// RespondRequest is the request body for PUT /events/{eventID}/rsvp.
type RespondRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (r RespondRequest) Validate() []string {
	var errs []string
	if _, err := domain.ParseRSVPStatus(r.Status); err != nil {
		errs = append(errs, "status must be one of GOING, MAYBE, NOT_GOING")
	}
	return errs
}

// RespondSuccessResponse is the success response envelope for PUT /events/{eventID}/rsvp (200).
type RespondSuccessResponse struct {
	Data  *domain.RSVP      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Respond godoc
// @Summary Respond to an event
// @Description Records the caller's attendance response. Responding again overwrites the previous status; there is always at most one response per user per event.
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RespondRequest true "Status: GOING, MAYBE, or NOT_GOING"
// @Success 200 {object} controllers.RespondSuccessResponse "data contains the stored response"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvp [put]
func (c *RSVPController) Respond(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RespondRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, err := c.Service.Respond(r.Context(), eventID, userID, domain.RSVPStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}

// GetMyResponse godoc
// @Summary Get my response for an event
// @Description Returns the caller's attendance response. data is null when the caller has not responded yet; that is not an error.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.RespondSuccessResponse "data contains the response or null"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvp [get]
func (c *RSVPController) GetMyResponse(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	rsvp, err := c.Service.GetForCaller(r.Context(), eventID, userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}
