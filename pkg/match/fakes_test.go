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

	"github.com/Thiagos25/llm-chess-arena/pkg/llm"
	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

// scriptedPlayer answers with the given lines in order, and with ErrQuit
// once they run out.
type scriptedPlayer struct {
	name    string
	kind    Kind
	answers []string

	proposals []Proposal
}

func (player *scriptedPlayer) Name() string { return player.name }
func (player *scriptedPlayer) Kind() Kind   { return player.kind }

func (player *scriptedPlayer) Propose(ctx context.Context, proposal Proposal) (string, error) {
	player.proposals = append(player.proposals, proposal)
	if len(player.answers) == 0 {
		return "", ErrQuit
	}

	answer := player.answers[0]
	player.answers = player.answers[1:]
	return answer, nil
}

// failingPlayer always fails with err.
type failingPlayer struct {
	err   error
	calls int
}

func (player *failingPlayer) Name() string { return "failing" }
func (player *failingPlayer) Kind() Kind   { return Agent }

func (player *failingPlayer) Propose(context.Context, Proposal) (string, error) {
	player.calls++
	return "", player.err
}

// scriptedGenerator records every request and answers with the given
// responses in order.
type scriptedGenerator struct {
	responses []string
	err       error

	requests [][]llm.Message
}

func (generator *scriptedGenerator) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	generator.requests = append(generator.requests, messages)
	if generator.err != nil {
		return "", generator.err
	}

	if len(generator.responses) == 0 {
		<-ctx.Done()
		return "", ctx.Err()
	}

	response := generator.responses[0]
	generator.responses = generator.responses[1:]
	return response, nil
}

// staleOracle is a chess oracle whose first Apply fails even for legal
// moves, as if the legal move set had gone stale.
type staleOracle struct {
	games.ChessOracle
	failures int
}

func (oracle *staleOracle) Apply(pos games.Position, move string) (games.Position, error) {
	if oracle.failures > 0 {
		oracle.failures--
		return nil, games.ErrIllegalMove
	}

	return oracle.ChessOracle.Apply(pos, move)
}

// recordingRenderer remembers the last moves it was asked to render.
type recordingRenderer struct {
	moves []string
}

func (renderer *recordingRenderer) Render(pos games.Position, lastMove string) error {
	renderer.moves = append(renderer.moves, lastMove)
	return nil
}
