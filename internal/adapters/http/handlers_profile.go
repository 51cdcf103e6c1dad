package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"ellarises/internal/adapters/http/middleware"
	"ellarises/internal/application/orchestrators"
	"ellarises/internal/application/projections"
	participantDomain "ellarises/internal/domain/participant"
)

// handleDashboard handles GET /dashboard — the signed-in person's activity
// overview. Managers additionally see a performance snapshot.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
		Email: sess.Email,
	}, projections.GetDashboardDeps{
		ParticipantStore:  stores.ParticipantStore,
		RegistrationStore: stores.RegistrationStore,
		SurveyStore:       stores.SurveyStore,
		MilestoneStore:    stores.MilestoneStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if !isHTMLRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	data := map[string]any{
		"FirstName":      sess.FirstName,
		"HasParticipant": result.HasParticipant,
		"TotalDonations": result.TotalDonations,
		"Registrations":  result.Registrations,
		"Surveys":        result.Surveys,
		"Milestones":     result.Milestones,
	}
	if sess.IsManager() && perfCollector != nil {
		data["Perf"] = perfCollector.Snapshot(time.Time{}, 5)
	}
	renderTemplate(w, r, "dashboard.html", data)
}

// handleProfile handles GET /profile — the combined demographics and account
// settings page. All writes go through the POST /profile/* routes.
func handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	u, err := stores.UserStore.GetByID(r.Context(), sess.UserID)
	if err != nil {
		internalError(w, err)
		return
	}

	// A login without a participant row renders an empty form; saving it
	// creates the row.
	p, perr := stores.ParticipantStore.GetByEmail(r.Context(), sess.Email)
	if perr != nil {
		p = participantDomain.Participant{Email: sess.Email, FirstName: sess.FirstName, LastName: sess.LastName}
	}

	var registrations any
	if perr == nil {
		regs, err := stores.RegistrationStore.ListByParticipant(r.Context(), p.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		registrations = regs
	}

	renderTemplate(w, r, "profile.html", map[string]any{
		"CSRFToken":              csrf.Token(r),
		"Username":               u.Username,
		"PasswordChangeRequired": u.PasswordChangeRequired,
		"Participant":            p,
		"Registrations":          registrations,
		"Flash":                  sessions.TakeFlash(middleware.SessionToken(r)),
	})
}

// handleUpdateParticipant handles POST /profile/update-participant
func handleUpdateParticipant(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.UpdateProfileInput{
		Email:            sess.Email,
		FirstName:        r.FormValue("FirstName"),
		LastName:         r.FormValue("LastName"),
		DOB:              r.FormValue("DOB"),
		Phone:            r.FormValue("Phone"),
		City:             r.FormValue("City"),
		State:            r.FormValue("State"),
		Zip:              r.FormValue("Zip"),
		SchoolOrEmployer: r.FormValue("SchoolOrEmployer"),
		FieldOfInterest:  r.FormValue("FieldOfInterest"),
	}

	if _, err := orchestrators.ExecuteUpdateProfile(r.Context(), input, orchestrators.UpdateProfileDeps{
		ParticipantStore: stores.ParticipantStore,
	}); err != nil {
		sessions.SetFlash(middleware.SessionToken(r), err.Error())
	} else {
		sessions.SetFlash(middleware.SessionToken(r), "Profile saved")
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// handleUpdateUsername handles POST /profile/update-username
func handleUpdateUsername(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteChangeUsername(r.Context(), orchestrators.ChangeUsernameInput{
		UserID:      sess.UserID,
		NewUsername: r.FormValue("Username"),
	}, orchestrators.SettingsDeps{UserStore: stores.UserStore})
	if err != nil {
		sessions.SetFlash(middleware.SessionToken(r), err.Error())
	} else {
		sessions.SetFlash(middleware.SessionToken(r), "Username updated")
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// handleUpdatePassword handles POST /profile/update-password
func handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
		UserID:          sess.UserID,
		CurrentPassword: r.FormValue("CurrentPassword"),
		NewPassword:     r.FormValue("NewPassword"),
		ConfirmPassword: r.FormValue("ConfirmPassword"),
	}, orchestrators.SettingsDeps{UserStore: stores.UserStore})
	if err != nil {
		sessions.SetFlash(middleware.SessionToken(r), err.Error())
	} else {
		sessions.SetFlash(middleware.SessionToken(r), "Password updated")
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// handleDeleteProfile handles POST /profile/delete. Only the login goes; the
// participant record and its history survive the account.
func handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if err := orchestrators.ExecuteDeleteAccount(r.Context(), sess.UserID, orchestrators.SettingsDeps{
		UserStore: stores.UserStore,
	}); err != nil {
		internalError(w, err)
		return
	}

	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ownRegistration loads the registration and confirms it belongs to the
// session's participant. A mismatch renders as not-found rather than
// forbidden so registration ids cannot be enumerated.
func ownRegistration(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := r.PathValue("id")

	reg, err := stores.RegistrationStore.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return "", false
	}
	p, err := stores.ParticipantStore.GetByEmail(r.Context(), sess.Email)
	if err != nil || p.ID != reg.ParticipantID {
		http.NotFound(w, r)
		return "", false
	}
	return id, true
}

// handleUnregister handles POST /profile/unregister/{id}
func handleUnregister(w http.ResponseWriter, r *http.Request) {
	id, ok := ownRegistration(w, r)
	if !ok {
		return
	}
	if err := stores.RegistrationStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	sessions.SetFlash(middleware.SessionToken(r), "Registration cancelled")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// handleUpdateEventStatus handles POST /profile/update-event-status/{id} —
// the signed-in person marking their own registration attended.
func handleUpdateEventStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := ownRegistration(w, r)
	if !ok {
		return
	}
	reg, err := stores.RegistrationStore.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	reg.MarkAttended(timeNow())
	if err := stores.RegistrationStore.Save(r.Context(), reg); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
