// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completion = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1,
	"model": "test-model",
	"choices": [{
		"index": 0,
		"message": {"role": "assistant", "content": "  My move: \"e5\" Central control.  "},
		"finish_reason": "stop"
	}]
}`

func server(t *testing.T, handler func(calls int32, w http.ResponseWriter, r *http.Request)) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(calls.Add(1), w, r)
	}))
	t.Cleanup(srv.Close)

	return srv, calls
}

func client(t *testing.T, url string) *Client {
	t.Helper()

	c, err := NewClient(ClientConfig{
		APIKey:          "test",
		BaseURL:         url + "/v1",
		Model:           "test-model",
		Temperature:     0.1,
		Timeout:         time.Second,
		MaxElapsed:      500 * time.Millisecond,
		InitialInterval: 5 * time.Millisecond,
	})
	require.NoError(t, err)
	return c
}

func TestClientGenerate(t *testing.T) {
	var request struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv, calls := server(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion))
	})

	text, err := client(t, srv.URL).Generate(context.Background(), []Message{
		{Role: System, Content: "You are playing black."},
		{Role: User, Content: "1. e4"},
	})
	require.NoError(t, err)

	assert.Equal(t, `My move: "e5" Central control.`, text)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "test-model", request.Model)
	require.Len(t, request.Messages, 2)
	assert.Equal(t, "system", request.Messages[0].Role)
	assert.Equal(t, "1. e4", request.Messages[1].Content)
}

func TestClientRetriesTransportFailures(t *testing.T) {
	srv, calls := server(t, func(call int32, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if call < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
			return
		}

		_, _ = w.Write([]byte(completion))
	})

	text, err := client(t, srv.URL).Generate(context.Background(), []Message{{Role: User, Content: "go"}})
	require.NoError(t, err)

	assert.Contains(t, text, "My move:")
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientGivesUpAfterBudget(t *testing.T) {
	srv, calls := server(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error": {"message": "bad gateway", "type": "server_error"}}`))
	})

	_, err := client(t, srv.URL).Generate(context.Background(), []Message{{Role: User, Content: "go"}})

	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Greater(t, calls.Load(), int32(1))
}

func TestClientDoesNotRetryRefusals(t *testing.T) {
	srv, calls := server(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	})

	_, err := client(t, srv.URL).Generate(context.Background(), []Message{{Role: User, Content: "go"}})

	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientCancelled(t *testing.T) {
	srv, _ := server(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client(t, srv.URL).Generate(ctx, []Message{{Role: User, Content: "go"}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrServiceUnavailable)
}

func TestNewClientRequiresModel(t *testing.T) {
	_, err := NewClient(ClientConfig{APIKey: "test"})
	assert.Error(t, err)
}
