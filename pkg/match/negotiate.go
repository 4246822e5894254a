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
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

// ExhaustedPolicy decides what happens to a turn once an agent has used up
// its attempts.
type ExhaustedPolicy int

const (
	// Abandon ends the match with an AttemptsExhaustedError.
	Abandon ExhaustedPolicy = iota
	// HandOver lets the Override player make the move instead.
	HandOver
)

func (policy ExhaustedPolicy) String() string {
	switch policy {
	case HandOver:
		return "human"
	default:
		return "abandon"
	}
}

// ParseExhaustedPolicy parses the configuration name of a policy.
func ParseExhaustedPolicy(name string) (ExhaustedPolicy, error) {
	switch name {
	case "", "abandon":
		return Abandon, nil
	case "human":
		return HandOver, nil
	default:
		return 0, fmt.Errorf("match: unknown exhausted policy %q", name)
	}
}

// Turn is the state a negotiation starts from.
type Turn struct {
	Side     games.Color
	Position games.Position

	History  string
	LastMove string
}

// Accepted is the outcome of a successful negotiation.
type Accepted struct {
	SAN      string
	Position games.Position

	// Player is the name of whoever made the move, which differs from
	// the negotiating player after a hand over.
	Player   string
	Attempts int
}

// Negotiator runs the proposal, parsing and validation cycle of a turn
// until a legal move is found or the turn can't go on.
type Negotiator struct {
	Oracle games.Oracle

	// MaxAttempts bounds the attempts of an Agent in a single turn.
	// Zero means there is no bound. Humans are never bounded.
	MaxAttempts int
	Exhausted   ExhaustedPolicy
	Override    Player

	Log *logrus.Entry
}

// Negotiate asks player for a move until one is legal in turn.Position.
// Only Retryable errors are recovered from; every other error ends the
// turn and is returned.
func (negotiator *Negotiator) Negotiate(ctx context.Context, player Player, turn Turn) (Accepted, error) {
	accepted, err := negotiator.negotiate(ctx, player, turn, 0)
	if err == nil {
		return accepted, nil
	}

	var exhausted *AttemptsExhaustedError
	if !errors.As(err, &exhausted) || negotiator.Exhausted != HandOver || negotiator.Override == nil {
		return Accepted{}, err
	}

	negotiator.log().WithFields(logrus.Fields{
		"player":   player.Name(),
		"side":     turn.Side,
		"attempts": exhausted.Attempts,
	}).Warnf("handing the move over to %s", negotiator.Override.Name())

	return negotiator.negotiate(ctx, negotiator.Override, turn, exhausted.Attempts)
}

func (negotiator *Negotiator) negotiate(ctx context.Context, player Player, turn Turn, attempts int) (Accepted, error) {
	bounded := player.Kind() == Agent && negotiator.MaxAttempts > 0
	start := attempts

	var last error
	for {
		if err := ctx.Err(); err != nil {
			return Accepted{}, fmt.Errorf("%w: %w", ErrAbandoned, err)
		}

		if bounded && attempts-start >= negotiator.MaxAttempts {
			return Accepted{}, &AttemptsExhaustedError{
				Player:   player.Name(),
				Attempts: attempts - start,
				Last:     last,
			}
		}

		// the legal move set is never reused across attempts
		legal := negotiator.Oracle.LegalMoves(turn.Position)

		raw, err := player.Propose(ctx, Proposal{
			Side:     turn.Side,
			Position: turn.Position,
			History:  turn.History,
			LastMove: turn.LastMove,
			Legal:    legal,
			Retry:    attempts > start,
			Attempt:  attempts - start + 1,
		})
		attempts++

		if err != nil {
			if ctx.Err() != nil {
				return Accepted{}, fmt.Errorf("%w: %w", ErrAbandoned, ctx.Err())
			}

			return Accepted{}, err
		}

		san, next, err := negotiator.validate(player, turn.Position, legal, raw)
		if err != nil {
			if !Retryable(err) {
				return Accepted{}, err
			}

			negotiator.log().WithFields(logrus.Fields{
				"player":  player.Name(),
				"side":    turn.Side,
				"attempt": attempts - start,
				"raw":     raw,
			}).Warn(err)

			last = err
			continue
		}

		return Accepted{
			SAN:      san,
			Position: next,
			Player:   player.Name(),
			Attempts: attempts,
		}, nil
	}
}

func (negotiator *Negotiator) validate(player Player, pos games.Position, legal []string, raw string) (string, games.Position, error) {
	move := raw
	if player.Kind() == Agent {
		var err error
		if move, err = ParseMove(raw); err != nil {
			return "", nil, err
		}
	}

	move = strings.TrimSpace(move)
	if !slices.Contains(legal, move) {
		return "", nil, &IllegalMoveError{Move: move}
	}

	next, err := negotiator.Oracle.Apply(pos, move)
	if err != nil {
		// The legal set was stale; treat it like any other illegal move.
		return "", nil, &IllegalMoveError{Move: move, Err: err}
	}

	return move, next, nil
}

func (negotiator *Negotiator) log() *logrus.Entry {
	if negotiator.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}

	return negotiator.Log
}
