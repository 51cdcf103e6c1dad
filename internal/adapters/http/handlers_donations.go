package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"ellarises/internal/adapters/http/middleware"
	"ellarises/internal/adapters/storage"
	"ellarises/internal/application/orchestrators"
	"ellarises/internal/application/projections"
	donationDomain "ellarises/internal/domain/donation"
)

// renderDonatePage renders /donate for a signed-in viewer. A failed history
// query degrades to a message with an empty list; the donate form stays
// usable either way.
func renderDonatePage(w http.ResponseWriter, r *http.Request, email, errMsg, success string) {
	history, err := projections.QueryGetDonationHistory(r.Context(), email, projections.GetDonationHistoryDeps{
		ParticipantStore: stores.ParticipantStore,
		DonationStore:    stores.DonationStore,
	})
	if err != nil {
		if errMsg == "" {
			errMsg = "Could not load your donation history"
		}
		history = projections.GetDonationHistoryResult{}
	}
	renderTemplate(w, r, "donate.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"LoggedIn":  true,
		"Donations": history.Donations,
		"Total":     history.Total,
		"Error":     errMsg,
		"Success":   success,
	})
}

// handleDonate handles GET and POST for /donate. Anonymous visitors see an
// invitation to log in; donating requires a session.
func handleDonate(w http.ResponseWriter, r *http.Request) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	if r.Method == "GET" {
		if !loggedIn {
			renderTemplate(w, r, "donate.html", map[string]any{"LoggedIn": false})
			return
		}
		renderDonatePage(w, r, sess.Email, "", "")
		return
	}

	if r.Method == "POST" {
		if !loggedIn {
			http.Redirect(w, r, "/login?returnTo=%2Fdonate", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		amount, err := strconv.ParseFloat(r.FormValue("Amount"), 64)
		if err != nil {
			renderDonatePage(w, r, sess.Email, donationDomain.ErrInvalidAmount.Error(), "")
			return
		}

		d, err := orchestrators.ExecuteDonate(r.Context(), orchestrators.DonateInput{
			Email:  sess.Email,
			Amount: amount,
		}, orchestrators.DonateDeps{
			ParticipantStore: stores.ParticipantStore,
			DonationStore:    stores.DonationStore,
			Sender:           emailSender,
		})
		if err != nil {
			if errors.Is(err, donationDomain.ErrInvalidAmount) || errors.Is(err, orchestrators.ErrNoParticipant) {
				renderDonatePage(w, r, sess.Email, err.Error(), "")
				return
			}
			internalError(w, err)
			return
		}
		renderDonatePage(w, r, sess.Email, "", "Thank you for donating $"+strconv.FormatFloat(d.Amount, 'f', 2, 64))
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDonationHistory handles GET /donations — the signed-in person's
// giving history.
func handleDonationHistory(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	history, err := projections.QueryGetDonationHistory(r.Context(), sess.Email, projections.GetDonationHistoryDeps{
		ParticipantStore: stores.ParticipantStore,
		DonationStore:    stores.DonationStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "donation_history.html", map[string]any{
			"Donations": history.Donations,
			"Total":     history.Total,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

// handleEditDonation handles POST /donations/edit/{id} — a manager
// correcting a recorded amount. The donor's running total moves by the
// difference in the same transaction.
func handleEditDonation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")

	d, err := stores.DonationStore.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	amount, err := strconv.ParseFloat(r.FormValue("Amount"), 64)
	if err != nil || amount <= 0 {
		http.Error(w, donationDomain.ErrInvalidAmount.Error(), http.StatusBadRequest)
		return
	}

	donatedAt := d.DonatedAt
	if raw := r.FormValue("DonatedAt"); raw != "" {
		if t, err := storage.ParseTime(raw); err == nil {
			donatedAt = t
		}
	}

	if err := stores.DonationStore.UpdateAmountWithTotal(r.Context(), id, amount, donatedAt); err != nil {
		internalError(w, err)
		return
	}

	returnTo := safeReturnTo(r.FormValue("ReturnTo"))
	if returnTo == "/" {
		returnTo = "/participants/" + d.ParticipantID
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}
