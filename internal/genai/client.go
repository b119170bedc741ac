// Package genai is a thin request/response facade over the Gemini REST API.
// It is stateless from the caller's perspective: every operation is a single
// shot, there is no streaming and no automatic retry. Callers decide what to
// show when a call fails; this package only reports the failure.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ngonexus/internal/infra"
)

// Model identifiers per operation. The tiered split is deliberate: cheap
// summaries ride the lite model while grounded search and image work use the
// heavier ones.
const (
	modelQuickSummary = "gemini-flash-lite-latest"
	modelAssistant    = "gemini-3-pro-preview"
	modelSearch       = "gemini-3-flash-preview"
	modelMaps         = "gemini-2.5-flash"
	modelPoster       = "gemini-3-pro-image-preview"
	modelPhotoEdit    = "gemini-2.5-flash-image"
)

const assistantSystemInstruction = `You are a helpful NGO assistant for "NGO Nexus". You assist donors and volunteers with questions about campaigns, social impact, and volunteering opportunities.`

// Fallback strings surfaced when the model returns an empty body.
const (
	fallbackSummary  = "No summary available."
	fallbackChat     = "I'm sorry, I couldn't process that."
	fallbackAnalysis = "Analysis failed."
)

// keyNotSelectedMarker is the remote error text that means the hosting
// environment has not selected an API key. It is an authorization signal,
// not a terminal failure.
const keyNotSelectedMarker = "Requested entity was not found."

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client invokes the Gemini generateContent endpoint for the operations the
// application needs. One client is built per stored API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Message is one assistant conversation turn.
type Message struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// Source is a grounded citation returned by search and maps lookups.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SearchResult is the response of a search-grounded query.
type SearchResult struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

// PlacesResult is the response of a location-grounded lookup.
type PlacesResult struct {
	Text   string   `json:"text"`
	Places []Source `json:"places"`
}

// PosterSize enumerates accepted image resolution tiers.
type PosterSize string

const (
	Poster1K PosterSize = "1K"
	Poster2K PosterSize = "2K"
	Poster4K PosterSize = "4K"
)

// Valid reports whether the size is a recognized tier.
func (s PosterSize) Valid() bool {
	switch s {
	case Poster1K, Poster2K, Poster4K:
		return true
	}
	return false
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
	GoogleMaps   *struct{} `json:"googleMaps,omitempty"`
}

type geminiLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geminiRetrievalConfig struct {
	LatLng *geminiLatLng `json:"latLng,omitempty"`
}

type geminiToolConfig struct {
	RetrievalConfig *geminiRetrievalConfig `json:"retrievalConfig,omitempty"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

type geminiGenerationConfig struct {
	ImageConfig *geminiImageConfig `json:"imageConfig,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Tools             []geminiTool            `json:"tools,omitempty"`
	ToolConfig        *geminiToolConfig       `json:"toolConfig,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGroundingWeb struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
}

type geminiGroundingChunk struct {
	Web  *geminiGroundingWeb `json:"web,omitempty"`
	Maps *geminiGroundingWeb `json:"maps,omitempty"`
}

type geminiGroundingMetadata struct {
	GroundingChunks []geminiGroundingChunk `json:"groundingChunks,omitempty"`
}

type geminiCandidate struct {
	Content           geminiContent            `json:"content"`
	FinishReason      string                   `json:"finishReason,omitempty"`
	GroundingMetadata *geminiGroundingMetadata `json:"groundingMetadata,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Status  string `json:"status,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// RemoteError wraps a non-2xx Gemini response.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini status %d", e.StatusCode)
	}
	return fmt.Sprintf("gemini status %d: %s", e.StatusCode, e.Message)
}

// IsKeyNotSelected reports whether err is the "entity not found" remote error
// that the UI must reinterpret as "select an API key and try again".
func IsKeyNotSelected(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), keyNotSelectedMarker)
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; a reusable one with a generous timeout is created.
func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// QuickSummary returns a two-sentence summary of the topic.
func (c *Client) QuickSummary(ctx context.Context, topic string) (string, error) {
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: "Provide a 2-sentence quick summary of: " + topic}},
		}},
	}
	resp, err := c.generateContent(ctx, modelQuickSummary, payload)
	if err != nil {
		return "", err
	}
	if text := firstText(resp); text != "" {
		return text, nil
	}
	return fallbackSummary, nil
}

// Chat sends one assistant turn with the prior conversation as context.
func (c *Client) Chat(ctx context.Context, history []Message, message string) (string, error) {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, m := range history {
		role := m.Role
		if role != "model" {
			role = "user"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Text}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})
	payload := geminiGenerateContentRequest{
		Contents: contents,
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: assistantSystemInstruction}},
		},
	}
	resp, err := c.generateContent(ctx, modelAssistant, payload)
	if err != nil {
		return "", err
	}
	if text := firstText(resp); text != "" {
		return text, nil
	}
	return fallbackChat, nil
}

// SearchTrends runs a search-grounded query and returns the answer with its
// web sources.
func (c *Client) SearchTrends(ctx context.Context, query string) (*SearchResult, error) {
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: query}}}},
		Tools:    []geminiTool{{GoogleSearch: &struct{}{}}},
	}
	resp, err := c.generateContent(ctx, modelSearch, payload)
	if err != nil {
		return nil, err
	}
	result := &SearchResult{Text: firstText(resp), Sources: []Source{}}
	for _, chunk := range groundingChunks(resp) {
		if chunk.Web != nil && chunk.Web.URI != "" {
			result.Sources = append(result.Sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return result, nil
}

// NearbyCharities runs a maps-grounded lookup around the given coordinates.
func (c *Client) NearbyCharities(ctx context.Context, lat, lng float64) (*PlacesResult, error) {
	prompt := fmt.Sprintf("List 5 highly-rated charity organizations, food banks, or donation centers physically located near coordinates %g, %g. For each, provide a brief description of their work.", lat, lng)
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		Tools:    []geminiTool{{GoogleMaps: &struct{}{}}},
		ToolConfig: &geminiToolConfig{
			RetrievalConfig: &geminiRetrievalConfig{
				LatLng: &geminiLatLng{Latitude: lat, Longitude: lng},
			},
		},
	}
	resp, err := c.generateContent(ctx, modelMaps, payload)
	if err != nil {
		return nil, err
	}
	result := &PlacesResult{Text: firstText(resp), Places: []Source{}}
	for _, chunk := range groundingChunks(resp) {
		if chunk.Maps != nil && chunk.Maps.URI != "" {
			result.Places = append(result.Places, Source{Title: chunk.Maps.Title, URI: chunk.Maps.URI})
		}
	}
	return result, nil
}

// GeneratePoster renders a campaign poster at the requested resolution tier.
// It returns nil bytes when the model produced no image.
func (c *Client) GeneratePoster(ctx context.Context, prompt string, size PosterSize) ([]byte, error) {
	if !size.Valid() {
		size = Poster1K
	}
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: "A professional NGO campaign poster: " + prompt}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			ImageConfig: &geminiImageConfig{AspectRatio: "3:4", ImageSize: string(size)},
		},
	}
	resp, err := c.generateContent(ctx, modelPoster, payload)
	if err != nil {
		return nil, err
	}
	return firstInlineImage(resp)
}

// EditPhoto applies an instruction to an existing photo. It returns nil bytes
// when the model produced no image.
func (c *Client) EditPhoto(ctx context.Context, image []byte, instruction string) ([]byte, error) {
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: base64.StdEncoding.EncodeToString(image)}},
				{Text: instruction},
			},
		}},
	}
	resp, err := c.generateContent(ctx, modelPhotoEdit, payload)
	if err != nil {
		return nil, err
	}
	return firstInlineImage(resp)
}

// AnalyzePhoto produces a concise field report from a photo.
func (c *Client) AnalyzePhoto(ctx context.Context, image []byte) (string, error) {
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: base64.StdEncoding.EncodeToString(image)}},
				{Text: "Analyze this field photo. What are the visible needs or current project status shown here? Provide a concise report for an NGO admin."},
			},
		}},
	}
	resp, err := c.generateContent(ctx, modelAssistant, payload)
	if err != nil {
		return "", err
	}
	if text := firstText(resp); text != "" {
		return text, nil
	}
	return fallbackAnalysis, nil
}

func (c *Client) generateContent(ctx context.Context, model string, payload geminiGenerateContentRequest) (*geminiGenerateContentResponse, error) {
	var response geminiGenerateContentResponse
	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(model))
	if err := c.invoke(ctx, path, payload, &response); err != nil {
		c.logger.Warn().Err(err).Str("model", model).Msg("genai: generateContent failed")
		return nil, err
	}
	return &response, nil
}

func (c *Client) invoke(ctx context.Context, path string, payload any, out any) error {
	endpoint := c.baseURL + path
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	q := req.URL.Query()
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return &RemoteError{StatusCode: resp.StatusCode, Message: apiErr.Error.Message}
		}
		data, _ := io.ReadAll(resp.Body)
		return &RemoteError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}

func firstText(resp *geminiGenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

func firstInlineImage(resp *geminiGenerateContentResponse) ([]byte, error) {
	if resp == nil {
		return nil, nil
	}
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decode inline image: %w", err)
			}
			return data, nil
		}
	}
	return nil, nil
}

func groundingChunks(resp *geminiGenerateContentResponse) []geminiGroundingChunk {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	return resp.Candidates[0].GroundingMetadata.GroundingChunks
}
