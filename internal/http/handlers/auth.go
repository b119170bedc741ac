package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ngonexus/internal/domain"
)

type registerRequest struct {
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Password     string   `json:"password"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	PhoneNumber  string   `json:"phone_number"`
	Availability string   `json:"availability"`
	Skills       []string `json:"skills"`
	Bio          string   `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	Email       string `json:"email"`
	SecurityKey string `json:"security_key"`
}

type sessionResponse struct {
	User       domain.User `json:"user"`
	Privileged bool        `json:"privileged,omitempty"`
	Page       string      `json:"page"`
}

// publicUser strips the credential before a user leaves the process.
func publicUser(u domain.User) domain.User {
	u.Credential = ""
	return u
}

func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	user := domain.User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         domain.Role(req.Role),
		Credential:   req.Password,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		PhoneNumber:  req.PhoneNumber,
		Availability: req.Availability,
		Skills:       req.Skills,
		Bio:          req.Bio,
	}
	created, err := a.Nexus.Register(r.Context(), user)
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		a.error(w, http.StatusConflict, "email_taken", "email already registered")
		return
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", "email, name and a donor or volunteer role are required")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("register failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register")
		return
	}
	a.json(w, http.StatusCreated, sessionResponse{
		User: publicUser(created),
		Page: string(a.Nexus.CurrentPage()),
	})
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	session, err := a.Nexus.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("login failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}
	a.json(w, http.StatusOK, sessionResponse{
		User:       publicUser(session.User),
		Privileged: session.Privileged,
		Page:       string(a.Nexus.CurrentPage()),
	})
}

func (a *App) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	session, err := a.Nexus.LoginAdmin(r.Context(), req.Email, req.SecurityKey)
	if errors.Is(err, domain.ErrForbidden) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid admin security key")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("admin login failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}
	a.json(w, http.StatusOK, sessionResponse{
		User:       publicUser(session.User),
		Privileged: session.Privileged,
		Page:       string(a.Nexus.CurrentPage()),
	})
}

func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.Nexus.Logout(r.Context()); err != nil {
		a.Logger.Error().Err(err).Msg("logout failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to log out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	session := a.Nexus.Session()
	if session == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	}
	a.json(w, http.StatusOK, sessionResponse{
		User:       publicUser(session.User),
		Privileged: session.Privileged,
		Page:       string(a.Nexus.CurrentPage()),
	})
}

func (a *App) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	updated, err := a.Nexus.UpdateProfile(r.Context(), user)
	switch {
	case errors.Is(err, domain.ErrNoSession):
		a.error(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "profile can only be updated by its owner")
		return
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "user not in registry")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("profile update failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update profile")
		return
	}
	a.json(w, http.StatusOK, publicUser(updated))
}
