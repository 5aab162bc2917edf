package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"gatherly/internal/delivery/http/controllers"
	"gatherly/internal/delivery/http/middleware"
	"gatherly/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Auth routes are rate limited per client IP; everything else requires a
// Bearer token.
func NewRouter(
	authController *controllers.AuthController,
	userController *controllers.UserController,
	eventController *controllers.EventController,
	rsvpController *controllers.RSVPController,
	profileController *controllers.ProfileController,
	verifier domain.TokenVerifier,
	limiter *middleware.RateLimiter,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", limiter.Limit(authController.SignUp))
	mux.HandleFunc("POST /auth/login", limiter.Limit(authController.Login))

	// Users
	mux.HandleFunc("GET /users/me", auth(userController.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(userController.UpdateMe))

	// Events
	mux.HandleFunc("GET /events/all", auth(eventController.ListAllEvents))
	mux.HandleFunc("GET /events/me", auth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEventByID))
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))

	// Tags
	mux.HandleFunc("POST /events/{eventID}/tags", auth(eventController.AddTag))
	mux.HandleFunc("DELETE /events/{eventID}/tags/{tagID}", auth(eventController.RemoveTag))

	// RSVPs
	mux.HandleFunc("PUT /events/{eventID}/rsvp", auth(rsvpController.Respond))
	mux.HandleFunc("GET /events/{eventID}/rsvp", auth(rsvpController.GetMyResponse))

	// Profiles
	mux.HandleFunc("GET /profiles/me", auth(profileController.GetMyProfile))
	mux.HandleFunc("GET /profiles/{profileID}", auth(profileController.GetProfile))
	mux.HandleFunc("POST /profiles", auth(profileController.CreateProfile))
	mux.HandleFunc("PATCH /profiles/{profileID}", auth(profileController.UpdateProfile))
	mux.HandleFunc("DELETE /profiles/{profileID}", auth(profileController.DeleteProfile))
	mux.HandleFunc("PUT /profiles/avatar", auth(profileController.UpdateAvatar))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
