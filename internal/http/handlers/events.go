package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ngonexus/internal/domain"
)

func (a *App) EventsList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Nexus.Events()})
}

func (a *App) EventsCreate(w http.ResponseWriter, r *http.Request) {
	var event domain.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	created, err := a.Nexus.AddEvent(r.Context(), event)
	switch {
	case errors.Is(err, domain.ErrNoSession):
		a.error(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "admin role required")
		return
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", "title and date are required")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("event create failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create event")
		return
	}
	a.json(w, http.StatusCreated, created)
}

func (a *App) EventJoin(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	event, err := a.Nexus.JoinEvent(r.Context(), eventID)
	switch {
	case errors.Is(err, domain.ErrNoSession):
		a.error(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "event not found")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("event join failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to join event")
		return
	}
	a.json(w, http.StatusOK, event)
}
