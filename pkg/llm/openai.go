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
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

type ClientConfig struct {
	APIKey  string
	BaseURL string // empty for the default OpenAI endpoint

	Model       string
	Temperature float32

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration

	// MaxElapsed bounds the time spent retrying transport failures.
	MaxElapsed time.Duration

	// InitialInterval is the first backoff delay; zero uses the default.
	InitialInterval time.Duration
}

// Client is a Generator backed by an OpenAI-compatible chat completion
// endpoint. Transport failures are retried with exponential backoff.
type Client struct {
	config ClientConfig
	api    *openai.Client
}

var _ Generator = (*Client)(nil)

func NewClient(config ClientConfig) (*Client, error) {
	if config.Model == "" {
		return nil, errors.New("llm: no model configured")
	}

	api := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		api.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	}

	return &Client{
		config: config,
		api:    openai.NewClientWithConfig(api),
	}, nil
}

func (client *Client) Generate(ctx context.Context, messages []Message) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       client.config.Model,
		Temperature: client.config.Temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}

	for _, message := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}

	var content string
	operation := func() error {
		reqCtx, cancel := client.requestContext(ctx)
		defer cancel()

		response, err := client.api.CreateChatCompletion(reqCtx, request)
		if err != nil {
			if ctx.Err() != nil {
				// The caller gave up; don't retry.
				return backoff.Permanent(ctx.Err())
			}

			if !retryable(err) {
				return backoff.Permanent(err)
			}

			return err
		}

		if len(response.Choices) > 0 {
			content = response.Choices[0].Message.Content
		}

		return nil
	}

	notify := func(err error, wait time.Duration) {
		logrus.WithFields(logrus.Fields{
			"model": client.config.Model,
			"wait":  wait,
		}).Warnf("text generation failed, retrying: %v", err)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(client.backoff(), ctx), notify); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return strings.TrimSpace(content), nil
}

func (client *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if client.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, client.config.Timeout)
}

func (client *Client) backoff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	if client.config.InitialInterval > 0 {
		policy.InitialInterval = client.config.InitialInterval
	}

	if client.config.MaxElapsed > 0 {
		policy.MaxElapsedTime = client.config.MaxElapsed
	}

	policy.Reset()
	return policy
}

// retryable reports whether err is a transport level failure which may
// go away if the request is repeated.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}

	// Network errors and per-request timeouts.
	return true
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests ||
		status == http.StatusRequestTimeout ||
		status >= http.StatusInternalServerError
}
