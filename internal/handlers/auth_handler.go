package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/dortega/velocilector/internal/security"
	"github.com/dortega/velocilector/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	templates            *template.Template
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, templates *template.Template, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		templates:            templates,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

func (h *AuthHandler) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s template: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

func (h *AuthHandler) isLoggedIn(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return false
	}
	_, err = h.authService.ValidateSession(cookie.Value)
	return err == nil
}

// Home renders the landing page, or forwards signed-in parents to their players
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if h.isLoggedIn(r) {
		http.Redirect(w, r, "/players", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if h.isLoggedIn(r) {
		http.Redirect(w, r, "/players", http.StatusSeeOther)
		return
	}

	h.render(w, "login.tmpl", LoginViewData{
		Title:          "Entrar - Velocilector",
		OAuthProviders: h.oauthProviderViews(),
	})
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	session, _, err := h.authService.Login(email, password)
	if err != nil {
		h.render(w, "login.tmpl", LoginViewData{
			Title:          "Entrar - Velocilector",
			OAuthProviders: h.oauthProviderViews(),
			Error:          "Correo o contraseña incorrectos",
			Email:          email,
		})
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/players", http.StatusSeeOther)
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if h.isLoggedIn(r) {
		http.Redirect(w, r, "/players", http.StatusSeeOther)
		return
	}

	h.render(w, "register.tmpl", RegisterViewData{
		Title:          "Crear cuenta - Velocilector",
		OAuthProviders: h.oauthProviderViews(),
	})
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	name := r.FormValue("name")

	_, err := h.authService.Register(email, password, name)
	if err != nil {
		message := err.Error()
		if errors.Is(err, service.ErrEmailTaken) {
			message = "Ya existe una cuenta con ese correo"
		}
		h.render(w, "register.tmpl", RegisterViewData{
			Title:          "Crear cuenta - Velocilector",
			OAuthProviders: h.oauthProviderViews(),
			Error:          message,
			Email:          email,
			Name:           name,
		})
		return
	}

	// Auto-login after registration
	session, _, err := h.authService.Login(email, password)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/players", http.StatusSeeOther)
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowForgotPassword renders the password reset request page
func (h *AuthHandler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.render(w, "forgot_password.tmpl", ForgotPasswordViewData{
		Title: "Recuperar contraseña - Velocilector",
	})
}

// ForgotPassword handles the password reset request form
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	if err := h.authService.RequestPasswordReset(email); err != nil {
		log.Printf("Error requesting password reset: %v", err)
	}

	// Always report success so the form cannot be used to probe for accounts
	h.render(w, "forgot_password.tmpl", ForgotPasswordViewData{
		Title:   "Recuperar contraseña - Velocilector",
		Success: "Si existe una cuenta con ese correo, recibirás un enlace para restablecer la contraseña",
	})
}

// ShowResetPassword renders the password reset form for a token
func (h *AuthHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, "/forgot-password", http.StatusSeeOther)
		return
	}

	h.render(w, "reset_password.tmpl", ResetPasswordViewData{
		Title: "Nueva contraseña - Velocilector",
		Token: token,
	})
}

// ResetPassword handles the password reset form submission
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	token := r.FormValue("token")
	password := r.FormValue("password")

	if err := h.authService.ResetPassword(token, password); err != nil {
		message := "No se pudo restablecer la contraseña"
		if errors.Is(err, service.ErrInvalidResetToken) {
			message = "El enlace de restablecimiento no es válido o ha caducado"
		}
		h.render(w, "reset_password.tmpl", ResetPasswordViewData{
			Title: "Nueva contraseña - Velocilector",
			Token: token,
			Error: message,
		})
		return
	}

	h.render(w, "login.tmpl", LoginViewData{
		Title:          "Entrar - Velocilector",
		OAuthProviders: h.oauthProviderViews(),
		Success:        "Contraseña actualizada, ya puedes entrar",
	})
}
