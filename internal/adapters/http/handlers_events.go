package web

import (
	"errors"
	"net/http"

	"github.com/gorilla/csrf"

	"ellarises/internal/adapters/http/middleware"
	"ellarises/internal/application/orchestrators"
	"ellarises/internal/application/projections"
)

// handleEventRegister handles GET (detail + confirm form) and POST (register)
// for /eventRegister/{id}.
func handleEventRegister(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	occurrenceID := r.PathValue("id")

	renderPage := func(errMsg string, registered bool) {
		// The occurrence is fetched fresh for every render, including error
		// renders, so the page never shows stale details.
		result, err := projections.QueryGetEventDetail(r.Context(), occurrenceID, sess.Email, projections.GetEventDetailDeps{
			EventStore:        stores.EventStore,
			RegistrationStore: stores.RegistrationStore,
			ParticipantStore:  stores.ParticipantStore,
		})
		if err != nil {
			http.NotFound(w, r)
			return
		}
		renderTemplate(w, r, "event_register.html", map[string]any{
			"CSRFToken":  csrf.Token(r),
			"Event":      result.Event,
			"Registered": result.Registered || registered,
			"Error":      errMsg,
			"Success":    registered,
		})
	}

	if r.Method == "GET" {
		renderPage("", false)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.RegisterForEventInput{
			Email:        sess.Email,
			FirstName:    sess.FirstName,
			LastName:     sess.LastName,
			OccurrenceID: occurrenceID,
		}
		_, err := orchestrators.ExecuteRegisterForEvent(r.Context(), input, orchestrators.RegisterForEventDeps{
			ParticipantStore:  stores.ParticipantStore,
			RegistrationStore: stores.RegistrationStore,
			OccurrenceStore:   stores.EventStore,
		})
		if err != nil {
			if errors.Is(err, orchestrators.ErrAlreadyRegistered) {
				renderPage(err.Error(), false)
				return
			}
			internalError(w, err)
			return
		}
		renderPage("", true)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
