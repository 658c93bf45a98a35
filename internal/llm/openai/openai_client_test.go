package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/config"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/llm"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/llm/openai"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/port"
)

func newTestClient(serverURL string, timeout time.Duration) *openai.Client {
	return openai.NewClient(&config.GenerationConfig{
		Provider:    "openai",
		APIKey:      "test-openai-key",
		Model:       "gpt-4o-mini",
		Endpoint:    serverURL,
		Timeout:     timeout,
		Temperature: 0.2,
	})
}

func successResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

var testRequest = port.GenerationRequest{System: "system text", Prompt: "user prompt"}

func TestClient_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", reqBody["model"])
		assert.InDelta(t, 0.2, reqBody["temperature"], 1e-9)
		assert.Equal(t, map[string]interface{}{"type": "json_object"}, reqBody["response_format"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 2)
		system := messages[0].(map[string]interface{})
		assert.Equal(t, "system", system["role"])
		assert.Equal(t, "system text", system["content"])
		user := messages[1].(map[string]interface{})
		assert.Equal(t, "user", user["role"])
		assert.Equal(t, "user prompt", user["content"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse(`{"summary":"ok"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 5*time.Second)

	text, err := c.Generate(context.Background(), testRequest)

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, text)
	assert.Equal(t, "openai", c.Name())
}

func TestClient_Generate_DefaultModel(t *testing.T) {
	var model interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		model = reqBody["model"]
		_ = json.NewEncoder(w).Encode(successResponse(`{}`))
	}))
	defer server.Close()

	c := openai.NewClient(&config.GenerationConfig{Provider: "openai", APIKey: "k", Endpoint: server.URL})
	_, err := c.Generate(context.Background(), testRequest)

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", model)
}

func TestClient_Generate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 5*time.Second).Generate(context.Background(), testRequest)

	require.Error(t, err)
	var apiErr *llm.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "upstream")
}

func TestClient_Generate_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 5*time.Second).Generate(context.Background(), testRequest)

	var rlErr *llm.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 30*time.Second, rlErr.RetryAfter)
	assert.Equal(t, "openai", rlErr.Provider)
}

func TestClient_Generate_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 5*time.Second).Generate(context.Background(), testRequest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestClient_Generate_Truncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{"},"finish_reason":"length"}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 5*time.Second).Generate(context.Background(), testRequest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestClient_Generate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	start := time.Now()
	_, err := newTestClient(server.URL, 50*time.Millisecond).Generate(context.Background(), testRequest)

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_Generate_NotJSONEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 5*time.Second).Generate(context.Background(), testRequest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshaling response")
}
