package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"

	"ellarises/internal/adapters/http/middleware"
	userStore "ellarises/internal/adapters/storage/user"
	"ellarises/internal/application/listutil"
	"ellarises/internal/application/orchestrators"
	"ellarises/internal/application/projections"
	registrationDomain "ellarises/internal/domain/registration"
	surveyDomain "ellarises/internal/domain/survey"
)

// handleParticipants handles GET (paged list) and POST (create/edit) for
// /participants.
func handleParticipants(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), listutil.PageSizeParticipants)
		result, err := projections.QueryGetParticipantList(r.Context(), projections.GetParticipantListQuery{
			Search: lp.Search,
			Page:   lp.Page,
		}, projections.GetParticipantListDeps{ParticipantStore: stores.ParticipantStore})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "participants.html", map[string]any{
				"CSRFToken":    csrf.Token(r),
				"Participants": result.Participants,
				"PageInfo":     result.PageInfo,
				"Search":       lp.Search,
				"Flash":        sessions.TakeFlash(middleware.SessionToken(r)),
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input := orchestrators.SaveParticipantInput{
			ID:               r.FormValue("ID"),
			Email:            r.FormValue("Email"),
			FirstName:        r.FormValue("FirstName"),
			LastName:         r.FormValue("LastName"),
			DOB:              r.FormValue("DOB"),
			Phone:            r.FormValue("Phone"),
			City:             r.FormValue("City"),
			State:            r.FormValue("State"),
			Zip:              r.FormValue("Zip"),
			SchoolOrEmployer: r.FormValue("SchoolOrEmployer"),
			FieldOfInterest:  r.FormValue("FieldOfInterest"),
			Role:             r.FormValue("Role"),
		}
		if _, err := orchestrators.ExecuteSaveParticipant(r.Context(), input, orchestrators.SaveParticipantDeps{
			ParticipantStore: stores.ParticipantStore,
		}); err != nil {
			if !isHTMLRequest(r) {
				jsonError(w, err.Error(), http.StatusBadRequest)
				return
			}
			sessions.SetFlash(middleware.SessionToken(r), err.Error())
		}
		http.Redirect(w, r, "/participants", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleParticipantDetail handles GET /participants/{id}
func handleParticipantDetail(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetParticipantDetail(r.Context(), r.PathValue("id"), projections.GetParticipantDetailDeps{
		ParticipantStore:  stores.ParticipantStore,
		RegistrationStore: stores.RegistrationStore,
		DonationStore:     stores.DonationStore,
		SurveyStore:       stores.SurveyStore,
		MilestoneStore:    stores.MilestoneStore,
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "participant_detail.html", map[string]any{
			"CSRFToken":     csrf.Token(r),
			"Participant":   result.Participant,
			"Registrations": result.Registrations,
			"Donations":     result.Donations,
			"Surveys":       result.Surveys,
			"Milestones":    result.Milestones,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleDeleteParticipant handles POST /participants/delete/{id}
func handleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	if err := stores.ParticipantStore.Delete(r.Context(), r.PathValue("id")); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/participants", http.StatusSeeOther)
}

// handleRegistrations handles GET (paged list) and POST (create/edit) for
// /registrations.
func handleRegistrations(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), listutil.PageSizeRegistrations)
		result, err := projections.QueryGetRegistrationList(r.Context(), projections.GetRegistrationListQuery{
			Search: lp.Search,
			Page:   lp.Page,
		}, projections.GetRegistrationListDeps{RegistrationStore: stores.RegistrationStore})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "registrations.html", map[string]any{
				"CSRFToken":     csrf.Token(r),
				"Registrations": result.Registrations,
				"PageInfo":      result.PageInfo,
				"Search":        lp.Search,
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		var reg registrationDomain.Registration
		if id := r.FormValue("ID"); id != "" {
			existing, err := stores.RegistrationStore.GetByID(r.Context(), id)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			reg = existing
		} else {
			reg = registrationDomain.Registration{
				ID:            uuid.NewString(),
				ParticipantID: r.FormValue("ParticipantID"),
				OccurrenceID:  r.FormValue("OccurrenceID"),
				CreatedAt:     timeNow(),
			}
		}
		if status := r.FormValue("Status"); status != "" {
			reg.Status = status
		}
		// Attended stays tri-state: an empty select leaves it unrecorded.
		switch r.FormValue("Attended") {
		case "yes":
			reg.MarkAttended(timeNow())
		case "no":
			attended := false
			reg.Attended = &attended
		}

		if err := reg.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.RegistrationStore.Save(r.Context(), reg); err != nil {
			internalError(w, err)
			return
		}
		http.Redirect(w, r, "/registrations", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDeleteRegistration handles POST /registrations/delete/{id}
func handleDeleteRegistration(w http.ResponseWriter, r *http.Request) {
	if err := stores.RegistrationStore.Delete(r.Context(), r.PathValue("id")); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/registrations", http.StatusSeeOther)
}

// handleSurveys handles GET (paged list) and POST (create/edit) for /surveys.
func handleSurveys(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), listutil.PageSizeSurveys)
		result, err := projections.QueryGetSurveyList(r.Context(), projections.GetSurveyListQuery{
			Search: lp.Search,
			Page:   lp.Page,
		}, projections.GetSurveyListDeps{SurveyStore: stores.SurveyStore})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "surveys.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Surveys":   result.Surveys,
				"PageInfo":  result.PageInfo,
				"Search":    lp.Search,
				"Flash":     sessions.TakeFlash(middleware.SessionToken(r)),
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		saveErr := func(err error) {
			if !isHTMLRequest(r) {
				jsonError(w, err.Error(), http.StatusBadRequest)
				return
			}
			sessions.SetFlash(middleware.SessionToken(r), err.Error())
			http.Redirect(w, r, "/surveys", http.StatusSeeOther)
		}

		var sv surveyDomain.Survey
		if id := r.FormValue("ID"); id != "" {
			existing, err := stores.SurveyStore.GetByID(r.Context(), id)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			sv = existing
		} else {
			sv = surveyDomain.Survey{ID: uuid.NewString(), CreatedAt: timeNow()}
		}
		if regID := r.FormValue("RegistrationID"); regID != "" {
			sv.RegistrationID = regID
		}

		var err error
		if sv.Satisfaction, err = parseScore(r, "Satisfaction"); err != nil {
			saveErr(err)
			return
		}
		if sv.Organization, err = parseScore(r, "Organization"); err != nil {
			saveErr(err)
			return
		}
		if sv.Content, err = parseScore(r, "Content"); err != nil {
			saveErr(err)
			return
		}
		if sv.Recommend, err = parseScore(r, "Recommend"); err != nil {
			saveErr(err)
			return
		}
		sv.Comments = r.FormValue("Comments")

		if err := sv.Validate(); err != nil {
			saveErr(err)
			return
		}
		sv.ComputeOverall()

		if err := stores.SurveyStore.Save(r.Context(), sv); err != nil {
			internalError(w, err)
			return
		}
		http.Redirect(w, r, "/surveys", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDeleteSurvey handles POST /surveys/delete/{id}
func handleDeleteSurvey(w http.ResponseWriter, r *http.Request) {
	if err := stores.SurveyStore.Delete(r.Context(), r.PathValue("id")); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/surveys", http.StatusSeeOther)
}

// handleUsers handles GET (list) and POST (create/edit with role mirror) for
// /users.
func handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), 0)
		users, err := stores.UserStore.List(r.Context(), userStore.ListFilter{Search: lp.Search})
		if err != nil {
			internalError(w, err)
			return
		}

		// Never expose password hashes, even to managers.
		type safeUser struct {
			ID                     string
			Email                  string
			Username               string
			FirstName              string
			LastName               string
			Role                   string
			PasswordChangeRequired bool
		}
		safe := make([]safeUser, 0, len(users))
		for _, u := range users {
			safe = append(safe, safeUser{
				ID: u.ID, Email: u.Email, Username: u.Username,
				FirstName: u.FirstName, LastName: u.LastName,
				Role: u.Role, PasswordChangeRequired: u.PasswordChangeRequired,
			})
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "users.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Users":     safe,
				"Search":    lp.Search,
				"Flash":     sessions.TakeFlash(middleware.SessionToken(r)),
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(safe)
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input := orchestrators.SaveUserInput{
			ID:        r.FormValue("ID"),
			Email:     r.FormValue("Email"),
			Username:  r.FormValue("Username"),
			Password:  r.FormValue("Password"),
			FirstName: r.FormValue("FirstName"),
			LastName:  r.FormValue("LastName"),
			Role:      r.FormValue("Role"),
		}
		if _, err := orchestrators.ExecuteSaveUser(r.Context(), input, orchestrators.SaveUserDeps{
			UserStore: stores.UserStore,
		}); err != nil {
			if !isHTMLRequest(r) {
				jsonError(w, err.Error(), http.StatusBadRequest)
				return
			}
			sessions.SetFlash(middleware.SessionToken(r), err.Error())
		}
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDeleteUser handles POST /users/delete/{id}. Managers cannot delete
// their own login from the list.
func handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := r.PathValue("id")
	if id == sess.UserID {
		http.Error(w, "you cannot delete the account you are signed in with", http.StatusBadRequest)
		return
	}
	if err := stores.UserStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// handleManagerEvents handles GET (occurrence + template list) and POST
// (create/edit) for /managerEvents. The page is login-gated with the role
// checked here so regular users get a readable refusal, not a login loop.
func handleManagerEvents(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsManager(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), 0)
		result, err := projections.QueryGetEventList(r.Context(), projections.GetEventListQuery{
			Search: lp.Search,
		}, projections.GetEventListDeps{EventStore: stores.EventStore})
		if err != nil {
			internalError(w, err)
			return
		}
		templates, err := stores.EventStore.ListTemplates(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "manager_events.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Events":    result.Events,
				"Templates": templates,
				"Search":    lp.Search,
				"Flash":     sessions.TakeFlash(middleware.SessionToken(r)),
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		capacity, _ := strconv.Atoi(r.FormValue("Capacity"))
		input := orchestrators.SaveEventInput{
			OccurrenceID:         r.FormValue("OccurrenceID"),
			TemplateID:           r.FormValue("TemplateID"),
			TemplateName:         r.FormValue("TemplateName"),
			TemplateType:         r.FormValue("TemplateType"),
			Description:          r.FormValue("Description"),
			Name:                 r.FormValue("Name"),
			StartsAt:             r.FormValue("StartsAt"),
			EndsAt:               r.FormValue("EndsAt"),
			Location:             r.FormValue("Location"),
			Capacity:             capacity,
			RegistrationDeadline: r.FormValue("RegistrationDeadline"),
		}
		if _, err := orchestrators.ExecuteSaveEvent(r.Context(), input, orchestrators.SaveEventDeps{
			EventStore: stores.EventStore,
		}); err != nil {
			if !isHTMLRequest(r) {
				jsonError(w, err.Error(), http.StatusBadRequest)
				return
			}
			sessions.SetFlash(middleware.SessionToken(r), err.Error())
		}
		http.Redirect(w, r, "/managerEvents", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDeleteEvent handles POST /managerEvents/delete/{id} (manager only).
func handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsManager(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := stores.EventStore.Delete(r.Context(), r.PathValue("id")); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/managerEvents", http.StatusSeeOther)
}

// handlePerf handles GET /perf — the manager performance dashboard built
// from the in-memory collector.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	window := time.Time{}
	if mins, err := strconv.Atoi(r.URL.Query().Get("mins")); err == nil && mins > 0 {
		window = timeNow().Add(-time.Duration(mins) * time.Minute)
	}

	snap := perfCollector.Snapshot(window, 10)

	if isHTMLRequest(r) {
		renderTemplate(w, r, "perf.html", map[string]any{"Snapshot": snap})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
