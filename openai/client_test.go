package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/openaikit/core"
)

// newTestClient starts a TLS server running handler and returns a client
// pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	return newTestClientWithConfig(t, Configuration{}, handler, opts...)
}

func newTestClientWithConfig(t *testing.T, cfg Configuration, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	if cfg.Token.IsEmpty() {
		cfg.Token = core.NewSecret("test-key")
	}
	cfg.Host = strings.TrimPrefix(server.URL, "https://")

	opts = append([]Option{WithHTTPClient(server.Client())}, opts...)
	return New(cfg, opts...), server
}

// recordingHook collects telemetry events.
type recordingHook struct {
	mu     sync.Mutex
	starts []core.RequestStartEvent
	ends   []core.RequestEndEvent
}

func (h *recordingHook) OnRequestStart(e core.RequestStartEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts = append(h.starts, e)
}

func (h *recordingHook) OnRequestEnd(e core.RequestEndEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ends = append(h.ends, e)
}

func (h *recordingHook) snapshot() ([]core.RequestStartEvent, []core.RequestEndEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]core.RequestStartEvent(nil), h.starts...), append([]core.RequestEndEvent(nil), h.ends...)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewDefaults(t *testing.T) {
	c := New(Configuration{Token: core.NewSecret("k")})

	cfg := c.Configuration()
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "k", cfg.Token.Expose())
	assert.Same(t, http.DefaultClient, c.httpClient)
	assert.Equal(t, 0, c.ActiveSessions())
}

func TestNewWithToken(t *testing.T) {
	c := NewWithToken("sk-test", WithHeader("X-Trace", "1"))

	assert.Equal(t, "sk-test", c.Configuration().Token.Expose())
	assert.Equal(t, "1", c.headers.Get("X-Trace"))
}

func TestConfigurationIsCopied(t *testing.T) {
	c := NewWithToken("k")

	cfg := c.Configuration()
	cfg.Host = "example.com"

	assert.Equal(t, DefaultHost, c.Configuration().Host)
}

func TestConfigurationFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_ORGANIZATION", "org-env")
	t.Setenv("OPENAI_HOST", "proxy.internal:8443")
	t.Setenv("OPENAI_TIMEOUT", "15s")

	cfg, err := ConfigurationFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.Token.Expose())
	assert.Equal(t, "org-env", cfg.OrganizationIdentifier)
	assert.Equal(t, "proxy.internal:8443", cfg.Host)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestConfigurationFromEnvDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_ORGANIZATION", "")
	t.Setenv("OPENAI_HOST", "")
	t.Setenv("OPENAI_TIMEOUT", "")

	cfg, err := ConfigurationFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Empty(t, cfg.OrganizationIdentifier)
}

func TestNewFromEnvRequiresToken(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewFromEnv()
	assert.ErrorIs(t, err, ErrTokenRequired)
}

func TestRequestHeaders(t *testing.T) {
	tests := []struct {
		name string
		org  string
	}{
		{name: "with organization", org: "org-123"},
		{name: "without organization", org: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got http.Header
			c, _ := newTestClientWithConfig(t,
				Configuration{OrganizationIdentifier: tt.org},
				func(w http.ResponseWriter, r *http.Request) {
					got = r.Header.Clone()
					w.Write([]byte(`{"object":"list","data":[]}`))
				},
				WithHeader("X-Custom", "yes"),
			)

			_, err := c.Models(testContext(t), nil).Await(testContext(t))
			require.NoError(t, err)

			assert.Equal(t, "Bearer test-key", got.Get("Authorization"))
			assert.Equal(t, "yes", got.Get("X-Custom"))
			if tt.org == "" {
				_, present := got["Openai-Organization"]
				assert.False(t, present, "OpenAI-Organization must be absent")
			} else {
				assert.Equal(t, tt.org, got.Get("OpenAI-Organization"))
			}
		})
	}
}

func TestModelLookupPath(t *testing.T) {
	var (
		method      string
		path        string
		contentType string
		body        []byte
	)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"gpt-4","object":"model","created":1687882411,"owned_by":"openai"}`))
	})

	resp, err := c.Model(testContext(t), ModelQuery{Model: "gpt-4"}, nil).Await(testContext(t))
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, "/v1/models/gpt-4", path)
	assert.Empty(t, contentType)
	assert.Empty(t, body)
	assert.Equal(t, "openai", resp.Result.OwnedBy)
}

func TestModelLookupEscapesID(t *testing.T) {
	var rawPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		w.Write([]byte(`{"id":"ft:gpt/x"}`))
	})

	_, err := c.Model(testContext(t), ModelQuery{Model: "ft:gpt/x"}, nil).Await(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, "/v1/models/ft:gpt%2Fx", rawPath)
}

func TestURLUsesHTTPS(t *testing.T) {
	c := New(Configuration{Token: core.NewSecret("k"), Host: "localhost:8080"})
	assert.Equal(t, "https://localhost:8080/v1/edits", c.url(editsPath))
}

func TestBuildRequestJSON(t *testing.T) {
	c := NewWithToken("k")

	req, err := c.buildRequest(context.Background(), jsonRequest(editsPath, EditsQuery{Model: "m", Instruction: "fix"}))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"model":"m","instruction":"fix"}`, string(body))
}

func TestBuildRequestErrors(t *testing.T) {
	c := NewWithToken("k")

	tests := []struct {
		name string
		desc requestDescriptor
	}{
		{name: "unencodable json", desc: jsonRequest(chatsPath, map[string]any{"bad": make(chan int)})},
		{name: "not form encodable", desc: requestDescriptor{path: imageEditsPath, body: "text", encoding: encodeMultipart}},
		{name: "missing encoding", desc: requestDescriptor{path: imageEditsPath, body: "text"}},
		{name: "bad audio type", desc: formRequest(audioTranscriptionsPath, AudioTranscriptionQuery{File: []byte("x"), FileType: "aac"})},
		{name: "empty image", desc: formRequest(imageVariationsPath, ImageVariationsQuery{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.buildRequest(context.Background(), tt.desc)
			assert.ErrorIs(t, err, core.ErrBuild)
		})
	}
}

func TestCloseWithoutSessions(t *testing.T) {
	c := NewWithToken("k")
	assert.NoError(t, c.Close())
}
