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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thiagos25/llm-chess-arena/pkg/data"
	"github.com/Thiagos25/llm-chess-arena/pkg/llm"
	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

func TestAgentEscalatesOnRetry(t *testing.T) {
	generator := &scriptedGenerator{responses: []string{
		"I think the king's pawn is best.",
		`My move: "e4" takes the center.`,
	}}

	agent := NewAgentPlayer(AgentConfig{Name: "GPT-4"}, games.White, generator)
	negotiator := &Negotiator{Oracle: &games.ChessOracle{}}

	accepted, err := negotiator.Negotiate(context.Background(), agent, startTurn(t, negotiator.Oracle))
	require.NoError(t, err)
	assert.Equal(t, "e4", accepted.SAN)

	require.Len(t, generator.requests, 2)
	first, second := generator.requests[0], generator.requests[1]

	// the system prompt is the same for every request
	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.Equal(t, llm.System, first[0].Role)
	assert.Equal(t, first[0], second[0])
	assert.Contains(t, first[0].Content, "white pieces")
	assert.Contains(t, first[0].Content, "My move:")

	assert.Equal(t, llm.User, first[1].Role)
	assert.NotContains(t, first[1].Content, data.LegalMovesHeader)
	assert.NotContains(t, first[1].Content, "Nf3")

	assert.Contains(t, second[1].Content, data.LegalMovesHeader)
	assert.Contains(t, second[1].Content, "Nf3")
	assert.Contains(t, second[1].Content, "e4")
}

func TestAgentPromptCarriesHistory(t *testing.T) {
	oracle := &games.ChessOracle{}
	pos, err := oracle.Initialize("")
	require.NoError(t, err)
	pos, err = oracle.Apply(pos, "e4")
	require.NoError(t, err)

	agent := NewAgentPlayer(AgentConfig{Name: "GPT-4", Language: "Portuguese"}, games.Black, &scriptedGenerator{})
	messages := agent.Messages(Proposal{
		Side:     games.Black,
		Position: pos,
		History:  "1. e4",
		LastMove: "e4",
	})

	assert.Contains(t, messages[0].Content, "black pieces")
	assert.Contains(t, messages[0].Content, "in Portuguese")
	assert.Contains(t, messages[1].Content, "1. e4")
}

func TestAgentTimeout(t *testing.T) {
	agent := NewAgentPlayer(
		AgentConfig{Name: "slow", Timeout: 20 * time.Millisecond},
		games.White, &scriptedGenerator{},
	)

	_, err := agent.Propose(context.Background(), Proposal{})
	assert.ErrorIs(t, err, llm.ErrServiceUnavailable)
	assert.False(t, Retryable(err))
}

func TestAgentCancelledIsNotUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agent := NewAgentPlayer(
		AgentConfig{Name: "slow", Timeout: time.Minute},
		games.White, &scriptedGenerator{},
	)

	_, err := agent.Propose(ctx, Proposal{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, llm.ErrServiceUnavailable)
}
