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

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

// Renderer displays positions as the game goes on.
type Renderer interface {
	Render(pos games.Position, lastMove string) error
}

type Config struct {
	Game, PositionFEN string

	// Oracle overrides the oracle looked up by Game.
	Oracle games.Oracle

	Players    [games.ColorN]Player
	Negotiator *Negotiator

	// Renderer and Record are optional.
	Renderer Renderer
	Record   *Record

	Log *logrus.Entry
}

// Run plays a game between the configured players. The returned record
// is always non-nil and finalized, even when the game was cut short by an
// error, so that it can be persisted by the caller.
func Run(ctx context.Context, config *Config) (*Record, error) {
	record := config.Record
	if record == nil {
		record = NewRecord(config.Players[games.White].Name(), config.Players[games.Black].Name())
	}

	log := config.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	oracle := config.Oracle
	if oracle == nil {
		oracle = games.GetOracle(config.Game)
	}

	if oracle == nil {
		record.Finalize(Unknown, games.Ongoing)
		return record, fmt.Errorf("match: unknown game %q", config.Game)
	}

	negotiator := config.Negotiator
	if negotiator == nil {
		negotiator = &Negotiator{}
	}

	negotiator.Oracle = oracle

	if negotiator.Log == nil {
		negotiator.Log = log
	}

	pos, err := oracle.Initialize(config.PositionFEN)
	if err != nil {
		record.Finalize(Unknown, games.Ongoing)
		return record, err
	}

	if pos.FEN() != games.StartFEN {
		record.StartFEN = pos.FEN()
	}

	render(config.Renderer, log, pos, "")

	for {
		if term := oracle.Termination(pos); term != games.Ongoing {
			result := ResultOf(term, pos.SideToMove())
			log.WithFields(logrus.Fields{
				"result":      result,
				"termination": term,
			}).Info("game over")

			return record, record.Finalize(result, term)
		}

		side := pos.SideToMove()
		player := config.Players[side]

		accepted, err := negotiator.Negotiate(ctx, player, Turn{
			Side:     side,
			Position: pos,
			History:  record.Movetext(),
			LastMove: record.LastMove(),
		})
		if err != nil {
			return record, abort(record, oracle, pos, err)
		}

		if err := record.Append(Move{
			SAN:      accepted.SAN,
			Side:     side,
			Position: accepted.Position,
			Player:   accepted.Player,
			Attempts: accepted.Attempts,
		}); err != nil {
			return record, err
		}

		log.WithFields(logrus.Fields{
			"player":   accepted.Player,
			"side":     side,
			"move":     accepted.SAN,
			"attempts": accepted.Attempts,
		}).Debug("move accepted")

		pos = accepted.Position
		render(config.Renderer, log, pos, accepted.SAN)
	}
}

// abort closes the record of a game which can't go on, with the oracle's
// verdict of the current position, normally an unknown result.
func abort(record *Record, oracle games.Oracle, pos games.Position, err error) error {
	term := oracle.Termination(pos)
	if finalizeErr := record.Finalize(ResultOf(term, pos.SideToMove()), term); finalizeErr != nil {
		return multierror.Append(err, finalizeErr)
	}

	return err
}

func render(renderer Renderer, log *logrus.Entry, pos games.Position, lastMove string) {
	if renderer == nil {
		return
	}

	if err := renderer.Render(pos, lastMove); err != nil {
		log.WithError(err).Warn("render failed")
	}
}
