package web

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"ellarises/internal/adapters/http/middleware"
	"ellarises/internal/application/orchestrators"
	surveyDomain "ellarises/internal/domain/survey"
)

// handleUserSurveys handles GET /userSurveys — the signed-in person's
// submitted feedback plus the form for events they attended.
func handleUserSurveys(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	data := map[string]any{
		"CSRFToken": csrf.Token(r),
		"Flash":     sessions.TakeFlash(middleware.SessionToken(r)),
	}

	p, err := stores.ParticipantStore.GetByEmail(r.Context(), sess.Email)
	if err == nil {
		surveys, err := stores.SurveyStore.ListByParticipant(r.Context(), p.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		regs, err := stores.RegistrationStore.ListByParticipant(r.Context(), p.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		data["Surveys"] = surveys
		data["Registrations"] = regs
	}

	renderTemplate(w, r, "user_surveys.html", data)
}

// parseScore reads a 1-5 score form field. Non-numeric input maps onto the
// same out-of-range error the domain reports, so the user sees one message.
func parseScore(r *http.Request, field string) (int, error) {
	n, err := strconv.Atoi(r.FormValue(field))
	if err != nil {
		return 0, surveyDomain.ErrScoreOutOfRange
	}
	return n, nil
}

// handleSubmitSurvey handles POST /userSurveys/submit. Validation failures
// set a session flash and write nothing.
func handleSubmitSurvey(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	flashAndReturn := func(msg string) {
		sessions.SetFlash(middleware.SessionToken(r), msg)
		http.Redirect(w, r, "/userSurveys", http.StatusSeeOther)
	}

	input := orchestrators.SubmitSurveyInput{
		RegistrationID: r.FormValue("RegistrationID"),
		Comments:       r.FormValue("Comments"),
	}
	var err error
	if input.Satisfaction, err = parseScore(r, "Satisfaction"); err != nil {
		flashAndReturn(err.Error())
		return
	}
	if input.Organization, err = parseScore(r, "Organization"); err != nil {
		flashAndReturn(err.Error())
		return
	}
	if input.Content, err = parseScore(r, "Content"); err != nil {
		flashAndReturn(err.Error())
		return
	}
	if input.Recommend, err = parseScore(r, "Recommend"); err != nil {
		flashAndReturn(err.Error())
		return
	}

	if p, err := stores.ParticipantStore.GetByEmail(r.Context(), sess.Email); err == nil {
		input.ParticipantID = p.ID
	}

	if _, err := orchestrators.ExecuteSubmitSurvey(r.Context(), input, orchestrators.SubmitSurveyDeps{
		RegistrationStore: stores.RegistrationStore,
		SurveyStore:       stores.SurveyStore,
	}); err != nil {
		flashAndReturn(err.Error())
		return
	}

	flashAndReturn("Thanks for your feedback")
}

// handleDeleteOwnSurvey handles POST /userSurveys/delete/{id}. Ownership is
// enforced through the registration the survey hangs off.
func handleDeleteOwnSurvey(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := r.PathValue("id")

	sv, err := stores.SurveyStore.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	reg, err := stores.RegistrationStore.GetByID(r.Context(), sv.RegistrationID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := stores.ParticipantStore.GetByEmail(r.Context(), sess.Email)
	if err != nil || p.ID != reg.ParticipantID {
		http.NotFound(w, r)
		return
	}

	if err := stores.SurveyStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/userSurveys", http.StatusSeeOther)
}
