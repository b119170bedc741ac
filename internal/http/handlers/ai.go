package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"ngonexus/internal/genai"
	"ngonexus/internal/middleware"
	"ngonexus/internal/prompt"
)

// Remote failures are never fatal: the attempted action is abandoned and the
// client shows a dismissible fallback, so every error path here maps to a
// structured JSON error, not a 500 page.

const providerUnavailable = "the assistant is unavailable right now, please try again later"

type summaryRequest struct {
	Topic string `json:"topic"`
}

type chatRequest struct {
	History []genai.Message `json:"history"`
	Message string          `json:"message"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type nearbyRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type posterRequest struct {
	Prompt string                 `json:"prompt"`
	Size   string                 `json:"size"`
	Brief  *prompt.EnhanceRequest `json:"brief"`
}

type photoRequest struct {
	Image       string `json:"image"` // base64
	Instruction string `json:"instruction"`
}

type keyRequest struct {
	Key string `json:"key"`
}

// gateway builds an AI gateway for the currently selected key. The empty
// string means no key is selected; callers that require the capability flag
// must check it first.
func (a *App) gateway(r *http.Request) (AIGateway, string, error) {
	key, err := a.Creds.GeminiAPIKey(r.Context())
	if err != nil {
		return nil, "", err
	}
	return a.Gateway(key), key, nil
}

func (a *App) AIKeyStatus(w http.ResponseWriter, r *http.Request) {
	selected, err := a.Creds.HasGeminiAPIKey(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("key status read failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to read key status")
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"selected": selected})
}

func (a *App) AIKeySet(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Creds.SetGeminiAPIKey(r.Context(), req.Key); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "a non-empty key is required")
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"selected": true})
}

func (a *App) AISummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topic == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "topic required")
		return
	}
	gw, _, err := a.gateway(r)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read credentials")
		return
	}
	text, err := gw.QuickSummary(r.Context(), req.Topic)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("quick summary failed")
		a.error(w, http.StatusBadGateway, "provider_failure", providerUnavailable)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"text": text})
}

func (a *App) AIChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "message required")
		return
	}
	gw, _, err := a.gateway(r)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read credentials")
		return
	}
	text, err := gw.Chat(r.Context(), req.History, req.Message)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("assistant chat failed")
		a.error(w, http.StatusBadGateway, "provider_failure", providerUnavailable)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"text": text})
}

func (a *App) AISearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "query required")
		return
	}
	gw, _, err := a.gateway(r)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read credentials")
		return
	}
	result, err := gw.SearchTrends(r.Context(), req.Query)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("search grounding failed")
		a.error(w, http.StatusBadGateway, "provider_failure", providerUnavailable)
		return
	}
	a.json(w, http.StatusOK, result)
}

// AINearby finds charities around the caller. Coordinate precedence: explicit
// body coordinates, then a GeoIP estimate of the client address, then a
// search-grounded query against the profile-declared city. With none of the
// three the request is rejected with an actionable message.
func (a *App) AINearby(w http.ResponseWriter, r *http.Request) {
	var req nearbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	gw, _, err := a.gateway(r)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read credentials")
		return
	}

	if req.Latitude != nil && req.Longitude != nil {
		a.respondNearby(w, r, gw, *req.Latitude, *req.Longitude)
		return
	}
	if a.Geo != nil {
		if loc, err := a.Geo.Locate(middleware.ClientIP(r)); err == nil && loc != nil && (loc.Latitude != 0 || loc.Longitude != 0) {
			a.respondNearby(w, r, gw, loc.Latitude, loc.Longitude)
			return
		}
	}
	if session := a.Nexus.Session(); session != nil && session.User.City != "" {
		result, err := gw.SearchTrends(r.Context(), "List highly-rated charity organizations, food banks, or donation centers in "+session.User.City+", "+session.User.State)
		if err != nil {
			a.Logger.Warn().Err(err).Msg("nearby city fallback failed")
			a.error(w, http.StatusBadGateway, "provider_failure", providerUnavailable)
			return
		}
		a.json(w, http.StatusOK, genai.PlacesResult{Text: result.Text, Places: result.Sources})
		return
	}
	a.error(w, http.StatusUnprocessableEntity, "location_unavailable", "send coordinates, or set a city on your profile")
}

func (a *App) respondNearby(w http.ResponseWriter, r *http.Request, gw AIGateway, lat, lng float64) {
	result, err := gw.NearbyCharities(r.Context(), lat, lng)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("nearby lookup failed")
		a.error(w, http.StatusBadGateway, "provider_failure", providerUnavailable)
		return
	}
	a.json(w, http.StatusOK, result)
}

// AIPoster generates a campaign poster. The image paths are gated on the
// "key selected" capability: without a stored key the client is told to
// authorize first, and the remote "entity not found" error re-triggers the
// same prompt instead of failing terminally.
func (a *App) AIPoster(w http.ResponseWriter, r *http.Request) {
	var req posterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	gw, key, err := a.gateway(r)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read credentials")
		return
	}
	if key == "" {
		a.error(w, http.StatusPreconditionRequired, "key_required", "select a Gemini API key before generating images")
		return
	}

	posterPrompt := req.Prompt
	if posterPrompt == "" && req.Brief != nil {
		posterPrompt = a.Enhancer.Enhance(*req.Brief)
	}
	if posterPrompt == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt or brief required")
		return
	}

	image, err := gw.GeneratePoster(r.Context(), posterPrompt, genai.PosterSize(req.Size))
	if err != nil {
		if genai.IsKeyNotSelected(err) {
			a.error(w, http.StatusPreconditionRequired, "key_required", "re-select a Gemini API key and try again")
			return
		}
		a.Logger.Warn().Err(err).Msg("poster generation failed")
		a.error(w, http.StatusBadGateway, "provider_failure", providerUnavailable)
		return
	}
	if image == nil {
		a.json(w, http.StatusOK, map[string]any{"image": nil})
		return
	}
	a.json(w, http.StatusOK, map[string]string{"image": base64.StdEncoding.EncodeToString(image)})
}

func (a *App) AIPhotoEdit(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" || req.Instruction == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "image and instruction required")
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image must be base64")
		return
	}
	gw, key, err := a.gateway(r)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read credentials")
		return
	}
	if key == "" {
		a.error(w, http.StatusPreconditionRequired, "key_required", "select a Gemini API key before editing images")
		return
	}
	edited, err := gw.EditPhoto(r.Context(), image, req.Instruction)
	if err != nil {
		if genai.IsKeyNotSelected(err) {
			a.error(w, http.StatusPreconditionRequired, "key_required", "re-select a Gemini API key and try again")
			return
		}
		a.Logger.Warn().Err(err).Msg("photo edit failed")
		a.error(w, http.StatusBadGateway, "provider_failure", providerUnavailable)
		return
	}
	if edited == nil {
		a.json(w, http.StatusOK, map[string]any{"image": nil})
		return
	}
	a.json(w, http.StatusOK, map[string]string{"image": base64.StdEncoding.EncodeToString(edited)})
}

func (a *App) AIPhotoAnalyze(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "image required")
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image must be base64")
		return
	}
	gw, _, err := a.gateway(r)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read credentials")
		return
	}
	text, err := gw.AnalyzePhoto(r.Context(), image)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("photo analysis failed")
		a.error(w, http.StatusBadGateway, "provider_failure", providerUnavailable)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"text": text})
}
