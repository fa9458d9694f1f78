// Package llm consults an OpenRouter-hosted language model for a second
// opinion on publication metadata. The client never fails: any transport,
// status, or parse problem degrades to "no opinion".
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tgn-press/pipeline/internal/metadata"
	"github.com/tgn-press/pipeline/internal/observability"
)

const (
	openRouterURL  = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel   = "qwen/qwen2.5-7b-instruct"
	defaultTimeout = 15 * time.Second

	// confidenceGate is the threshold below which the model's opinion is
	// discarded wholesale, name and date both.
	confidenceGate = 0.6

	digestPageLimit = 2
	digestLineLimit = 35
)

const systemPrompt = "You extract publication metadata from OCR lines.\n" +
	"Return ONLY compact JSON with keys: publication_name, publication_date, confidence.\n" +
	"publication_name must be null when uncertain.\n" +
	"publication_date must be null when uncertain.\n" +
	"confidence is a number from 0 to 1."

// Config holds arbitration settings. An empty APIKey leaves arbitration
// disabled; that is a valid state, not an error.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client talks to the OpenRouter chat-completions API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates an arbitration client.
func NewClient(cfg Config, logger *observability.Logger) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openRouterURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.WithComponent("llm"),
	}
}

// Enabled reports whether a credential and model are configured.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.model != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// opinion is the model's JSON payload, decoded leniently: keys may be
// missing, null, or mistyped, and are coerced with defaults rather than
// rejected.
type opinion struct {
	PublicationName any `json:"publication_name"`
	PublicationDate any `json:"publication_date"`
	Confidence      any `json:"confidence"`
}

// ResolveMetadata asks the model for a publication name and date based on a
// digest of the first pages. It returns ("", "") when arbitration is
// disabled, the digest is empty, the call fails in any way, or the model's
// confidence is below the gate. There is no retry within a resolution.
func (c *Client) ResolveMetadata(ctx context.Context, pages []metadata.Page, fallbackName string) (string, string) {
	if !c.Enabled() {
		return "", ""
	}

	digest := BuildPageDigest(pages)
	if digest == "" {
		return "", ""
	}

	body, err := json.Marshal(c.buildRequest(digest, fallbackName))
	if err != nil {
		c.logger.Warn().Err(err).Msg("arbitration request marshal failed")
		return "", ""
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn().Err(err).Msg("arbitration request build failed")
		return "", ""
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn().Err(err).Msg("arbitration request failed")
		return "", ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("arbitration returned non-success status")
		return "", ""
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Warn().Err(err).Msg("arbitration response decode failed")
		return "", ""
	}
	if len(parsed.Choices) == 0 {
		c.logger.Warn().Msg("arbitration response had no choices")
		return "", ""
	}

	content := stripCodeFence(parsed.Choices[0].Message.Content)
	var op opinion
	if err := json.Unmarshal([]byte(content), &op); err != nil {
		c.logger.Warn().Err(err).Msg("arbitration content was not valid JSON")
		return "", ""
	}

	confidence := asNumber(op.Confidence)
	name := metadata.NormalizeSpaces(asString(op.PublicationName))
	date := metadata.NormalizeSpaces(asString(op.PublicationDate))

	if confidence < confidenceGate {
		c.logger.Debug().Float64("confidence", confidence).Msg("arbitration below confidence gate, discarded")
		return "", ""
	}

	c.logger.Debug().
		Float64("confidence", confidence).
		Str("name", name).
		Str("date", date).
		Msg("arbitration accepted")
	return name, date
}

func (c *Client) buildRequest(digest, fallbackName string) chatRequest {
	fallback := fallbackName
	if fallback == "" {
		fallback = "null"
	}

	userPrompt := fmt.Sprintf(
		"Fallback filename: %s\n\nOCR lines from first pages:\n%s\n\n"+
			"Rules:\n"+
			"- Prefer masthead/publication title, not article titles.\n"+
			"- If title seems unavailable, return null.\n"+
			"- If date is unavailable, return null.\n"+
			"- No extra keys, no prose.",
		fallback, digest)

	return chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
}

// BuildPageDigest summarizes the first pages' reconstructed lines into the
// compact text block sent to the model. Returns "" when no page yields a
// usable line.
func BuildPageDigest(pages []metadata.Page) string {
	ordered := make([]metadata.Page, len(pages))
	copy(ordered, pages)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].PageNumber < ordered[j].PageNumber })
	if len(ordered) > digestPageLimit {
		ordered = ordered[:digestPageLimit]
	}

	var blocks []string
	for _, page := range ordered {
		lines := metadata.ReconstructLines(page.WordBoxes)
		if len(lines) == 0 {
			continue
		}
		if len(lines) > digestLineLimit {
			lines = lines[:digestLineLimit]
		}
		rows := make([]string, 0, len(lines))
		for _, line := range lines {
			rows = append(rows, fmt.Sprintf("- y=%d text=%s", int(line.Y), line.Text))
		}
		blocks = append(blocks, fmt.Sprintf("Page %d\n%s", page.PageNumber, strings.Join(rows, "\n")))
	}
	return strings.Join(blocks, "\n\n")
}

var (
	codeFenceOpen  = regexp.MustCompile("^```[a-zA-Z0-9_-]*\n?")
	codeFenceClose = regexp.MustCompile("\n?```$")
)

// stripCodeFence removes an optional triple-backtick fence around the model's
// content.
func stripCodeFence(value string) string {
	text := strings.TrimSpace(value)
	if strings.HasPrefix(text, "```") {
		text = codeFenceOpen.ReplaceAllString(text, "")
		text = codeFenceClose.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// asString coerces a decoded JSON value to a string, defaulting to "".
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// asNumber coerces a decoded JSON value to a float64, defaulting to 0.
func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
