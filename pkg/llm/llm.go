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

// Package llm talks to the text generation service which plays the
// automated side of a match.
package llm

import (
	"context"
	"errors"
)

// ErrServiceUnavailable is wrapped by every error caused by the service
// itself rather than by the content of its response: transport failures
// that outlived the retry budget and requests the service refused.
var ErrServiceUnavailable = errors.New("text generation service unavailable")

type Role string

const (
	System    Role = "system"
	User      Role = "user"
	Assistant Role = "assistant"
)

// Message is a single chat message sent to the service.
type Message struct {
	Role    Role
	Content string
}

// Generator produces free-form text from a conversation.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}
