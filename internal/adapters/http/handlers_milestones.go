package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"ellarises/internal/adapters/http/middleware"
	"ellarises/internal/application/orchestrators"
)

// handleUserMilestones handles GET /userMilestones — the signed-in person's
// own achievements with an add form.
func handleUserMilestones(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	data := map[string]any{
		"CSRFToken": csrf.Token(r),
		"Flash":     sessions.TakeFlash(middleware.SessionToken(r)),
	}
	if p, err := stores.ParticipantStore.GetByEmail(r.Context(), sess.Email); err == nil {
		milestones, err := stores.MilestoneStore.ListByParticipant(r.Context(), p.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		data["HasParticipant"] = true
		data["Milestones"] = milestones
	}
	renderTemplate(w, r, "user_milestones.html", data)
}

// handleAddOwnMilestone handles POST /userMilestones/add
func handleAddOwnMilestone(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	p, err := orchestrators.ExecuteEnsureParticipant(r.Context(), orchestrators.EnsureParticipantInput{
		Email:     sess.Email,
		FirstName: sess.FirstName,
		LastName:  sess.LastName,
	}, orchestrators.EnsureParticipantDeps{ParticipantStore: stores.ParticipantStore})
	if err != nil {
		internalError(w, err)
		return
	}

	if _, err := orchestrators.ExecuteAddMilestone(r.Context(), orchestrators.AddMilestoneInput{
		ParticipantID: p.ID,
		Title:         r.FormValue("Title"),
		AchievedOn:    r.FormValue("AchievedOn"),
	}, orchestrators.AddMilestoneDeps{MilestoneStore: stores.MilestoneStore}); err != nil {
		sessions.SetFlash(middleware.SessionToken(r), err.Error())
	}
	http.Redirect(w, r, "/userMilestones", http.StatusSeeOther)
}

// handleMilestones handles GET (all milestones) and POST (manager add) for
// /milestones. The page itself is login-gated; editing needs the manager
// role, checked here rather than at the route.
func handleMilestones(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		milestones, err := stores.MilestoneStore.List(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "milestones.html", map[string]any{
			"CSRFToken":  csrf.Token(r),
			"Milestones": milestones,
			"CanEdit":    middleware.IsManager(r.Context()),
			"Flash":      sessions.TakeFlash(middleware.SessionToken(r)),
		})
		return
	}

	if r.Method == "POST" {
		if !middleware.IsManager(r.Context()) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		// An ID in the form means edit-in-place; otherwise it is a create.
		if id := r.FormValue("ID"); id != "" {
			ms, err := stores.MilestoneStore.GetByID(r.Context(), id)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			if pid := r.FormValue("ParticipantID"); pid != "" {
				ms.ParticipantID = pid
			}
			ms.Title = r.FormValue("Title")
			ms.AchievedOn = r.FormValue("AchievedOn")
			if err := ms.Validate(); err != nil {
				sessions.SetFlash(middleware.SessionToken(r), err.Error())
			} else if err := stores.MilestoneStore.Save(r.Context(), ms); err != nil {
				internalError(w, err)
				return
			}
			http.Redirect(w, r, "/milestones", http.StatusSeeOther)
			return
		}

		if _, err := orchestrators.ExecuteAddMilestone(r.Context(), orchestrators.AddMilestoneInput{
			ParticipantID: r.FormValue("ParticipantID"),
			Title:         r.FormValue("Title"),
			AchievedOn:    r.FormValue("AchievedOn"),
		}, orchestrators.AddMilestoneDeps{MilestoneStore: stores.MilestoneStore}); err != nil {
			sessions.SetFlash(middleware.SessionToken(r), err.Error())
		}
		http.Redirect(w, r, "/milestones", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDeleteMilestone handles POST /milestones/delete/{id} (manager only).
func handleDeleteMilestone(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsManager(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := stores.MilestoneStore.Delete(r.Context(), r.PathValue("id")); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/milestones", http.StatusSeeOther)
}
