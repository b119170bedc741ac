package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ngonexus/internal/domain"
)

type donateRequest struct {
	Amount float64 `json:"amount"`
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Nexus.Campaigns()})
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var campaign domain.Campaign
	if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	created, err := a.Nexus.AddCampaign(r.Context(), campaign)
	switch {
	case errors.Is(err, domain.ErrNoSession):
		a.error(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "admin role required")
		return
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", "title, positive target and a valid category are required")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("campaign create failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create campaign")
		return
	}
	a.json(w, http.StatusCreated, created)
}

func (a *App) CampaignDonate(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	donation, err := a.Nexus.Donate(r.Context(), campaignID, req.Amount)
	switch {
	case errors.Is(err, domain.ErrNoSession):
		a.error(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to record donation")
		return
	}
	a.json(w, http.StatusCreated, donation)
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Nexus.Donations()})
}
