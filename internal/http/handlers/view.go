package handlers

import (
	"net/http"

	"ngonexus/internal/middleware"
	"ngonexus/internal/view"
)

type viewResponse struct {
	view.Descriptor
	Locale  string `json:"locale"`
	Country string `json:"country,omitempty"`
}

// ResolveView answers which page component and chrome the client should
// render. Resolution is total; an unknown page falls back to home rather
// than erroring.
func (a *App) ResolveView(w http.ResponseWriter, r *http.Request) {
	page := view.Page(r.URL.Query().Get("page"))
	if page == "" {
		page = a.Nexus.CurrentPage()
	} else {
		a.Nexus.Navigate(page)
	}
	a.json(w, http.StatusOK, viewResponse{
		Descriptor: a.Nexus.ResolveView(page),
		Locale:     middleware.LocaleFromContext(r.Context()),
		Country:    middleware.CountryFromContext(r.Context()),
	})
}

// Notification returns the pending advisory slot, or an empty object once it
// has expired.
func (a *App) Notification(w http.ResponseWriter, r *http.Request) {
	note := a.Nexus.Notification()
	if note == nil {
		a.json(w, http.StatusOK, map[string]any{"notification": nil})
		return
	}
	a.json(w, http.StatusOK, map[string]any{"notification": note})
}
