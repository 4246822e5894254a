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
	"fmt"

	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

// Kind is the kind of entity behind a Player.
type Kind int

const (
	Human Kind = iota
	Agent
)

func (kind Kind) String() string {
	switch kind {
	case Human:
		return "human"
	case Agent:
		return "agent"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

// ParseKind parses the configuration name of a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "human":
		return Human, nil
	case "agent":
		return Agent, nil
	default:
		return 0, fmt.Errorf("match: unknown player kind %q", name)
	}
}

// Proposal is everything a Player is told when asked for a move.
type Proposal struct {
	Side     games.Color
	Position games.Position

	History  string // movetext of the game so far
	LastMove string // empty before the first move

	// Legal is the set of legal moves, fresh for this attempt.
	Legal []string

	// Retry is set on every attempt after the first one of a turn.
	Retry   bool
	Attempt int
}

// Player supplies candidate moves for one side of a match.
type Player interface {
	Name() string
	Kind() Kind

	// Propose returns the player's raw answer. Agent answers are free-form
	// text which still has to go through ParseMove.
	Propose(ctx context.Context, proposal Proposal) (string, error)
}
