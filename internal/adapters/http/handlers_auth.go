package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"ellarises/internal/adapters/http/middleware"
	"ellarises/internal/application/orchestrators"
)

// safeReturnTo rejects off-site redirect targets. Only local paths are
// honoured so the login form cannot be used as an open redirect.
func safeReturnTo(raw string) string {
	if raw == "" || raw[0] != '/' || (len(raw) > 1 && raw[1] == '/') {
		return "/"
	}
	return raw
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		errMsg := ""
		if r.URL.Query().Get("error") == "unauthorized" {
			errMsg = "You need a manager account to view that page"
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"ReturnTo":  r.URL.Query().Get("returnTo"),
			"Error":     errMsg,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}
		returnTo := safeReturnTo(r.FormValue("ReturnTo"))

		result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
			UserStore: stores.UserStore,
		})
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"ReturnTo":  r.FormValue("ReturnTo"),
				"Error":     err.Error(),
			})
			return
		}

		token, err := sessions.Create(result.UserID, result.Email, result.Role, result.FirstName, result.LastName)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		middleware.SetSessionCookie(w, token)

		if result.PasswordChangeRequired {
			http.Redirect(w, r, "/profile", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles GET /logout. Logout destroys the session
// unconditionally and lands on the public home page.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleCreateProfile handles GET (form) and POST (signup) for /createProfile
func handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "create_profile.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.CreateProfileInput{
			Email:           r.FormValue("Email"),
			Username:        r.FormValue("Username"),
			Password:        r.FormValue("Password"),
			ConfirmPassword: r.FormValue("ConfirmPassword"),
			FirstName:       r.FormValue("FirstName"),
			LastName:        r.FormValue("LastName"),
		}

		result, err := orchestrators.ExecuteCreateProfile(r.Context(), input, orchestrators.CreateProfileDeps{
			UserStore: stores.UserStore,
			Sender:    emailSender,
		})
		if err != nil {
			renderTemplate(w, r, "create_profile.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
				"Form":      input,
			})
			return
		}

		// Signup logs the new user straight in.
		token, err := sessions.Create(result.UserID, result.Email, result.Role, result.FirstName, result.LastName)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
