package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// DiscordCall is one request the session made to the Discord API
type DiscordCall struct {
	Method string
	Path   string
}

// TestContext wires a mock core API and an intercepted Discord session
type TestContext struct {
	Server       *httptest.Server
	Mux          *http.ServeMux
	APIClient    *APIClient
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper

	mu     sync.Mutex
	edits  []discordgo.WebhookEdit
	calls  []DiscordCall
	defers []discordgo.InteractionResponse
}

// SetupTestContext sets up the test environment:
// a mock core API (httptest.Server), an APIClient talking to it,
// and a Discord session whose HTTP calls are captured instead of sent.
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	client := NewAPIClient(server.URL, "test-api-key")
	client.RetryDelay = time.Millisecond

	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("Failed to create mock session: %v", err)
	}

	ctx := &TestContext{
		Server:    server,
		Mux:       mux,
		APIClient: client,
		Session:   session,
	}

	ctx.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			ctx.capture(req)
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("{}")),
				Header:     make(http.Header),
			}, nil
		},
	}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}

	t.Cleanup(server.Close)

	return ctx
}

func (c *TestContext) capture(req *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, DiscordCall{Method: req.Method, Path: req.URL.Path})
	if req.Body == nil {
		return
	}
	switch req.Method {
	case http.MethodPatch:
		var body discordgo.WebhookEdit
		if json.NewDecoder(req.Body).Decode(&body) == nil {
			c.edits = append(c.edits, body)
		}
	case http.MethodPost:
		var body discordgo.InteractionResponse
		if json.NewDecoder(req.Body).Decode(&body) == nil {
			c.defers = append(c.defers, body)
		}
	}
}

// LastContent returns the content of the last response edit
func (c *TestContext) LastContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for idx := len(c.edits) - 1; idx >= 0; idx-- {
		if c.edits[idx].Content != nil {
			return *c.edits[idx].Content
		}
	}
	return ""
}

// LastEmbed returns the first embed of the last response edit carrying embeds
func (c *TestContext) LastEmbed() *discordgo.MessageEmbed {
	c.mu.Lock()
	defer c.mu.Unlock()
	for idx := len(c.edits) - 1; idx >= 0; idx-- {
		if c.edits[idx].Embeds != nil && len(*c.edits[idx].Embeds) > 0 {
			return (*c.edits[idx].Embeds)[0]
		}
	}
	return nil
}

// Calls returns the Discord API calls matching method
func (c *TestContext) Calls(method string) []DiscordCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []DiscordCall
	for _, call := range c.calls {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

// Deferrals returns the interaction callbacks sent
func (c *TestContext) Deferrals() []discordgo.InteractionResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]discordgo.InteractionResponse(nil), c.defers...)
}

// NewCommandInteraction builds a guild slash command interaction
func NewCommandInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:      "interaction-id",
			AppID:   "app-id",
			Token:   "interaction-token",
			GuildID: "guild-1",
			Type:    discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
			Member: &discordgo.Member{
				User:  &discordgo.User{ID: "user-1", Username: "Tester"},
				Roles: []string{},
			},
		},
	}
}

// WriteJSON writes data as a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a core API error body
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
