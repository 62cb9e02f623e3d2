// Package blackbox is a client for the blackbox.ai conversational web API.
// A chat call streams the answer to a query line by line and fetches the
// supporting sources behind it in one aggregated result.
package blackbox

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/hqslab/blackbox/pkg/webclient"
)

// DefaultBaseURL is the base URL for the blackbox.ai web API.
const DefaultBaseURL = "https://www.blackbox.ai/api"

// defaultOrigin is the site the fingerprint presents as the request origin.
const defaultOrigin = "https://www.blackbox.ai"

// validatedToken is the session validation id the upstream web client embeds
// in every chat payload. Requests without it are rejected.
const validatedToken = "00f37b34-a166-4efb-bce5-1312d87f2f94"

// Client talks to the blackbox.ai chat and sources endpoints.
type Client struct {
	webclient.Session

	Config Config

	// Echo receives each streamed answer line as it arrives, one line per
	// write. nil disables echoing.
	Echo io.Writer
}

// New creates a Client with the given config. A nil config uses
// DefaultConfig. The client owns a cookie-jar HTTP session so anti-bot
// challenge cookies survive across the two requests of one chat call.
func New(cfg *Config) *Client {
	conf := DefaultConfig()
	if cfg != nil {
		conf = *cfg
	}

	c := &Client{Config: conf}
	c.BaseURL = DefaultBaseURL
	c.Client = newHTTPClient(conf.Timeout)
	c.Headers = webclient.FingerprintHeaders(defaultOrigin)

	return c
}

// newHTTPClient builds the owned HTTP client: a cookie jar plus the
// configured per-request timeout.
func newHTTPClient(timeout time.Duration) *http.Client {
	client := &http.Client{Timeout: timeout}
	if jar, err := cookiejar.New(nil); err == nil {
		client.Jar = jar
	}

	return client
}

// ChatResult is the aggregated outcome of one chat call.
type ChatResult struct {
	// StreamingResponse is the full answer text, one streamed line per row,
	// each terminated by a newline.
	StreamingResponse string `json:"streaming_response"`
	// Sources is the raw JSON the sources endpoint returned. Empty when the
	// sources lookup was not reached.
	Sources json.RawMessage `json:"sources,omitempty"`
}

// Chat sends query to the chat endpoint under the named model and fetches
// the supporting sources for the same query. modelName is a friendly name
// such as "GPT_4O" (case-insensitive); empty means DefaultModelName.
//
// The chat request runs first and blocks until the streamed answer is
// complete; the sources request is then dispatched on a background worker
// and awaited. A chat failure propagates before the sources request is
// issued, and a sources failure fails the whole call.
func (c *Client) Chat(ctx context.Context, query, modelName string) (*ChatResult, error) {
	if modelName == "" {
		modelName = DefaultModelName
	}

	model, err := ResolveModel(modelName)
	if err != nil {
		return nil, err
	}

	text, err := c.fetchChat(ctx, query, model)
	if err != nil {
		return nil, err
	}

	type sourcesResult struct {
		sources json.RawMessage
		err     error
	}

	resultCh := make(chan sourcesResult, 1)
	go func() {
		sources, err := c.fetchSources(ctx, query)
		resultCh <- sourcesResult{sources: sources, err: err}
	}()

	res := <-resultCh
	if res.err != nil {
		return nil, res.err
	}

	return &ChatResult{
		StreamingResponse: text,
		Sources:           res.sources,
	}, nil
}

// fetchChat posts the chat payload and consumes the streamed answer. Each
// non-empty line is accumulated with a trailing newline and forwarded to the
// Echo sink when one is set.
func (c *Client) fetchChat(ctx context.Context, query string, model Model) (string, error) {
	req := chatRequest{
		Messages: []apiMessage{{
			Content: fmt.Sprintf("@%s %s", model, query),
			Role:    "user",
		}},
		CodeModelMode:       true,
		MaxTokens:           c.Config.MaxTokens,
		UserSelectedModel:   string(model),
		Validated:           validatedToken,
		WebSearchModePrompt: c.Config.WebSearchModePrompt,
		DeepSearchMode:      c.Config.DeepSearchMode,
	}

	body, err := c.PostStream(ctx, "/chat", req)
	if err != nil {
		return "", wrapRequestError("chat", err)
	}
	defer func() { _ = body.Close() }()

	var answer strings.Builder
	reader := bufio.NewReader(body)

	for {
		line, err := reader.ReadString('\n')

		if trimmed := strings.TrimRight(line, "\r\n"); trimmed != "" {
			answer.WriteString(trimmed)
			answer.WriteByte('\n')

			if c.Echo != nil {
				fmt.Fprintln(c.Echo, trimmed)
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return "", wrapRequestError("chat", err)
		}
	}

	return answer.String(), nil
}

// fetchSources posts the query to the sources endpoint and returns the raw
// JSON reply.
func (c *Client) fetchSources(ctx context.Context, query string) (json.RawMessage, error) {
	req := sourcesRequest{
		Query: query,
		Messages: []apiMessage{{
			Content: query,
			Role:    "user",
		}},
	}

	var sources json.RawMessage
	if err := c.PostJSON(ctx, "/check", req, &sources); err != nil {
		return nil, wrapRequestError("sources", err)
	}

	return sources, nil
}

// wrapRequestError converts a transport-level failure into an
// *APIRequestError for the given endpoint, surfacing the upstream status
// code when one was received.
func wrapRequestError(op string, err error) error {
	var statusErr *webclient.StatusError
	if errors.As(err, &statusErr) {
		return &APIRequestError{Op: op, StatusCode: statusErr.StatusCode, Err: err}
	}

	return &APIRequestError{Op: op, Err: err}
}

// API request types. Field names, the flag table, and the validated token
// mirror the upstream web client's payload; the service rejects requests
// missing any of them.

type chatRequest struct {
	Messages              []apiMessage `json:"messages"`
	ID                    string       `json:"id"`
	PreviewToken          *string      `json:"previewToken"`
	UserID                *string      `json:"userId"`
	CodeModelMode         bool         `json:"codeModelMode"`
	AgentMode             struct{}     `json:"agentMode"`
	TrendingAgentMode     struct{}     `json:"trendingAgentMode"`
	IsMicMode             bool         `json:"isMicMode"`
	UserSystemPrompt      *string      `json:"userSystemPrompt"`
	MaxTokens             int          `json:"maxTokens"`
	PlaygroundTopP        *float64     `json:"playgroundTopP"`
	PlaygroundTemperature *float64     `json:"playgroundTemperature"`
	IsChromeExt           bool         `json:"isChromeExt"`
	GithubToken           string       `json:"githubToken"`
	ClickedAnswer2        bool         `json:"clickedAnswer2"`
	ClickedAnswer3        bool         `json:"clickedAnswer3"`
	ClickedForceWebSearch bool         `json:"clickedForceWebSearch"`
	VisitFromDelta        bool         `json:"visitFromDelta"`
	MobileClient          bool         `json:"mobileClient"`
	UserSelectedModel     string       `json:"userSelectedModel"`
	Validated             string       `json:"validated"`
	ImageGenerationMode   bool         `json:"imageGenerationMode"`
	WebSearchModePrompt   bool         `json:"webSearchModePrompt"`
	DeepSearchMode        bool         `json:"deepSearchMode"`
}

type sourcesRequest struct {
	Query    string       `json:"query"`
	Messages []apiMessage `json:"messages"`
	Index    *int         `json:"index"`
}

type apiMessage struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Role    string `json:"role"`
}
