package web

import (
	"net/http"

	"ellarises/internal/adapters/http/middleware"
)

// registerRoutes wires every application route onto the mux. Gate choice
// follows the page, not the URL prefix: /milestones and /managerEvents are
// login-gated with an in-handler role check so the how-to copy renders for
// regular users, while the rest of the back office sits behind RequireManager.
func registerRoutes(mux *http.ServeMux) {
	requireLogin := middleware.RequireLogin(sessions, stores.UserStore)
	gated := func(h http.HandlerFunc) http.Handler {
		return requireLogin(h)
	}
	manager := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireManager(h)
	}

	// Public pages
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/events", handleEvents)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/createProfile", handleCreateProfile)

	// Donate is public on GET (it asks anonymous visitors to log in) and
	// login-only on POST; the handler sorts that out.
	mux.HandleFunc("/donate", handleDonate)

	// Signed-in pages
	mux.Handle("/dashboard", gated(handleDashboard))
	mux.Handle("/profile", gated(handleProfile))
	mux.Handle("POST /profile/update-participant", gated(handleUpdateParticipant))
	mux.Handle("POST /profile/update-username", gated(handleUpdateUsername))
	mux.Handle("POST /profile/update-password", gated(handleUpdatePassword))
	mux.Handle("POST /profile/delete", gated(handleDeleteProfile))
	mux.Handle("POST /profile/unregister/{id}", gated(handleUnregister))
	mux.Handle("POST /profile/update-event-status/{id}", gated(handleUpdateEventStatus))
	mux.Handle("/eventRegister/{id}", gated(handleEventRegister))
	mux.Handle("GET /donations", gated(handleDonationHistory))
	mux.Handle("/userSurveys", gated(handleUserSurveys))
	mux.Handle("POST /userSurveys/submit", gated(handleSubmitSurvey))
	mux.Handle("POST /userSurveys/delete/{id}", gated(handleDeleteOwnSurvey))
	mux.Handle("GET /userMilestones", gated(handleUserMilestones))
	mux.Handle("POST /userMilestones/add", gated(handleAddOwnMilestone))

	// Login-gated pages with in-handler role checks
	mux.Handle("/milestones", gated(handleMilestones))
	mux.Handle("POST /milestones/delete/{id}", gated(handleDeleteMilestone))
	mux.Handle("/managerEvents", gated(handleManagerEvents))
	mux.Handle("POST /managerEvents/delete/{id}", gated(handleDeleteEvent))

	// Manager back office
	mux.Handle("/participants", manager(handleParticipants))
	mux.Handle("GET /participants/{id}", manager(handleParticipantDetail))
	mux.Handle("POST /participants/delete/{id}", manager(handleDeleteParticipant))
	mux.Handle("/registrations", manager(handleRegistrations))
	mux.Handle("POST /registrations/delete/{id}", manager(handleDeleteRegistration))
	mux.Handle("/surveys", manager(handleSurveys))
	mux.Handle("POST /surveys/delete/{id}", manager(handleDeleteSurvey))
	mux.Handle("/users", manager(handleUsers))
	mux.Handle("POST /users/delete/{id}", manager(handleDeleteUser))
	mux.Handle("POST /donations/edit/{id}", manager(handleEditDonation))
	mux.Handle("GET /perf", manager(handlePerf))
}
