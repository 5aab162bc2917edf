package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gatherly/internal/delivery/http/helpers"
	"gatherly/internal/delivery/http/middleware"
	"gatherly/internal/domain"
)

// EventController handles event and tag routes.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events. All fields are required;
// date must be an ISO-8601 UTC timestamp (e.g. 2025-06-01T10:00:00.000Z).
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(time.RFC3339, c.Date); err != nil {
		errs = append(errs, "date must be a valid ISO 8601 timestamp")
	}
	return errs
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a new event. The authenticated user becomes the organizer; id and timestamps are server-generated.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be a valid ISO 8601 timestamp")
		return
	}
	now := time.Now()
	event := domain.NewEvent(userID, req.Title, req.Description, req.Location, date.UTC(), now, now)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListAllEventsSuccessResponse is the success response envelope for GET /events/all (200).
type ListAllEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListAllEvents godoc
// @Summary List all events
// @Description Returns every event from every organizer, newest first, with tags and RSVPs included.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListAllEventsSuccessResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/all [get]
func (c *EventController) ListAllEvents(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListAllEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListMyEvents godoc
// @Summary List my events
// @Description Returns the authenticated user's events, newest first, without tags or RSVPs.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListAllEventsSuccessResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/me [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListMyEvents(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the event. Reads are not restricted to the organizer.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional;
// omitted fields are unchanged. Supplied fields must be non-empty.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Date        *string `json:"date"`
}

// Validate implements Validator. Supplied fields must be non-empty; date must parse.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		errs = append(errs, "description must not be empty")
	}
	if u.Location != nil && strings.TrimSpace(*u.Location) == "" {
		errs = append(errs, "location must not be empty")
	}
	if u.Date != nil {
		if _, err := time.Parse(time.RFC3339, *u.Date); err != nil {
			errs = append(errs, "date must be a valid ISO 8601 timestamp")
		}
	}
	return errs
}

// UpdateEvent godoc
// @Summary Update event details
// @Description Updates title, description, location, and date. Only the organizer can update; a missing event and someone else's event both return 403.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
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
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be a valid ISO 8601 timestamp")
			return
		}
		utc := parsed.UTC()
		date = &utc
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, userID, req.Title, req.Description, req.Location, date)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "access to resource denied")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and all of its tags and RSVPs. Only the organizer can delete; a missing event and someone else's event both return 403.
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
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

// AddTagRequest is the request body for POST /events/{eventID}/tags.
type AddTagRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (a AddTagRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// AddTagSuccessResponse is the success response envelope for POST /events/{eventID}/tags (201).
type AddTagSuccessResponse struct {
	Data  *domain.Tag       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AddTag godoc
// @Summary Add a tag to an event
// @Description Creates a tag on the event. Requires the caller to be the organizer. Duplicate names are allowed.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body AddTagRequest true "Tag name"
// @Success 201 {object} controllers.AddTagSuccessResponse "data contains the created tag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tags [post]
func (c *EventController) AddTag(w http.ResponseWriter, r *http.Request) {
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
	var req AddTagRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tag, err := c.Service.AddTag(r.Context(), eventID, userID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "access to resource denied")
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, tag)
}

// RemoveTag godoc
// @Summary Remove a tag from an event
// @Description Deletes the tag if it belongs to the event. Requires the caller to be the organizer. A tag that does not exist or belongs to another event returns 404.
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param tagID path string true "Tag ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tags/{tagID} [delete]
func (c *EventController) RemoveTag(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	tagID := r.PathValue("tagID")
	if eventID == "" || tagID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or tagID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RemoveTag(r.Context(), eventID, tagID, userID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "access to resource denied")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "tag not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
