package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"ngonexus/internal/credentials"
	"ngonexus/internal/genai"
	"ngonexus/internal/infra"
	"ngonexus/internal/infra/geoip"
	"ngonexus/internal/nexus"
	"ngonexus/internal/prompt"
)

// AIGateway is the slice of the Gemini client the handlers consume. Tests
// substitute a stub.
type AIGateway interface {
	QuickSummary(ctx context.Context, topic string) (string, error)
	Chat(ctx context.Context, history []genai.Message, message string) (string, error)
	SearchTrends(ctx context.Context, query string) (*genai.SearchResult, error)
	NearbyCharities(ctx context.Context, lat, lng float64) (*genai.PlacesResult, error)
	GeneratePoster(ctx context.Context, prompt string, size genai.PosterSize) ([]byte, error)
	EditPhoto(ctx context.Context, image []byte, instruction string) ([]byte, error)
	AnalyzePhoto(ctx context.Context, image []byte) (string, error)
}

// GatewayFactory builds an AI gateway bound to the given API key. The key is
// read from the credentials store per call so a newly selected key takes
// effect without a restart.
type GatewayFactory func(apiKey string) AIGateway

// App is the handler container wiring the state controller and the external
// collaborators into the route tree.
type App struct {
	Nexus    *nexus.Nexus
	Creds    *credentials.Store
	Gateway  GatewayFactory
	Enhancer prompt.Enhancer
	Geo      geoip.Resolver
	Logger   infra.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
