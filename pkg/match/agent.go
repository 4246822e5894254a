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

package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"

	"github.com/Thiagos25/llm-chess-arena/pkg/data"
	"github.com/Thiagos25/llm-chess-arena/pkg/llm"
	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

// spinner charset used while waiting on the service
const SPIN = 14

type AgentConfig struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`

	// Timeout bounds a single Propose call, retries of the
	// service included. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`

	// Spinner, if non-nil, shows a working indicator on the
	// given writer while the service is generating.
	Spinner io.Writer `yaml:"-"`
}

// AgentPlayer asks a text generation service for moves. Its system prompt
// is decided once, from the side it plays, and kept for the whole match.
type AgentPlayer struct {
	config    AgentConfig
	generator llm.Generator

	side   games.Color
	system string
}

var _ Player = (*AgentPlayer)(nil)

func NewAgentPlayer(config AgentConfig, side games.Color, generator llm.Generator) *AgentPlayer {
	return &AgentPlayer{
		config:    config,
		generator: generator,

		side:   side,
		system: data.SystemPrompt(side.String(), config.Language),
	}
}

func (agent *AgentPlayer) Name() string { return agent.config.Name }
func (agent *AgentPlayer) Kind() Kind   { return Agent }

// Messages builds the request for the given proposal. The first attempt of
// a turn only carries the game history; later attempts escalate to the
// drawn board and the full list of legal moves.
func (agent *AgentPlayer) Messages(proposal Proposal) []llm.Message {
	var prompt string
	if proposal.Retry {
		prompt = data.RetryPrompt(
			proposal.Position.String(),
			proposal.History, proposal.LastMove,
			proposal.Legal,
		)
	} else {
		prompt = data.MovePrompt(proposal.History, proposal.LastMove)
	}

	return []llm.Message{
		{Role: llm.System, Content: agent.system},
		{Role: llm.User, Content: prompt},
	}
}

func (agent *AgentPlayer) Propose(ctx context.Context, proposal Proposal) (string, error) {
	parent := ctx
	if agent.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, agent.config.Timeout)
		defer cancel()
	}

	messages := agent.Messages(proposal)
	logrus.Debugf("info: (%s)< %s", agent.config.Name, messages[1].Content)

	if agent.config.Spinner != nil {
		s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond)
		s.Writer = agent.config.Spinner
		s.Suffix = " " + agent.config.Name + " is thinking"
		s.Start()
		defer s.Stop()
	}

	response, err := agent.generator.Generate(ctx, messages)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
			// our own per-call timeout, not the match's
			return "", fmt.Errorf("%w: %s timed out after %s", llm.ErrServiceUnavailable, agent.config.Name, agent.config.Timeout)
		}

		return "", err
	}

	logrus.Debugf("info: (%s)> %s", agent.config.Name, response)
	return response, nil
}
