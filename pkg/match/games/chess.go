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

package games

import (
	"fmt"

	"github.com/notnil/chess"
)

// ChessOracle implements Oracle for standard chess using notnil/chess.
// Moves are spoken in Standard Algebraic Notation, including the check
// and mate suffixes.
type ChessOracle struct{}

var _ Oracle = (*ChessOracle)(nil)

// ChessPosition is the Position type of ChessOracle. It remembers how it
// was reached so that repetition and move-rule draws can be evaluated.
type ChessPosition struct {
	start string   // FEN of the initial position
	moves []string // SAN moves played since start

	game *chess.Game
}

func (pos *ChessPosition) FEN() string {
	return pos.game.Position().String()
}

func (pos *ChessPosition) SideToMove() Color {
	if pos.game.Position().Turn() == chess.Black {
		return Black
	}

	return White
}

func (pos *ChessPosition) String() string {
	return pos.game.Position().Board().Draw()
}

// Moves returns the SAN moves played to reach this position.
func (pos *ChessPosition) Moves() []string {
	return append([]string(nil), pos.moves...)
}

func (oracle *ChessOracle) Initialize(fenstr string) (Position, error) {
	if fenstr == "" {
		fenstr = StartFEN
	}

	game, err := newGame(fenstr)
	if err != nil {
		return nil, err
	}

	return &ChessPosition{start: fenstr, game: game}, nil
}

func (oracle *ChessOracle) LegalMoves(pos Position) []string {
	position := oracle.position(pos)
	if position == nil {
		return nil
	}

	return sanMoves(position.game)
}

func (oracle *ChessOracle) Apply(pos Position, mov_str string) (Position, error) {
	position := oracle.position(pos)
	if position == nil {
		return nil, fmt.Errorf("chess oracle: foreign position %T", pos)
	}

	// Replay into a fresh game so the given position stays untouched.
	game, err := replay(position.start, position.moves)
	if err != nil {
		return nil, err
	}

	if err := playSAN(game, mov_str); err != nil {
		return nil, err
	}

	moves := make([]string, len(position.moves), len(position.moves)+1)
	copy(moves, position.moves)

	return &ChessPosition{
		start: position.start,
		moves: append(moves, mov_str),
		game:  game,
	}, nil
}

func (oracle *ChessOracle) Termination(pos Position) Termination {
	position := oracle.position(pos)
	if position == nil {
		return Ongoing
	}

	switch position.game.Position().Status() {
	case chess.Checkmate:
		return Checkmate
	case chess.Stalemate:
		return Stalemate
	}

	switch position.game.Method() {
	case chess.Checkmate:
		return Checkmate
	case chess.Stalemate:
		return Stalemate
	case chess.InsufficientMaterial:
		return InsufficientMaterial
	case chess.SeventyFiveMoveRule:
		return SeventyFiveMoveRule
	case chess.FivefoldRepetition:
		return FivefoldRepetition
	}

	return Ongoing
}

func (oracle *ChessOracle) position(pos Position) *ChessPosition {
	position, ok := pos.(*ChessPosition)
	if !ok || position == nil {
		return nil
	}

	return position
}

func newGame(fenstr string) (*chess.Game, error) {
	if fenstr == StartFEN {
		return chess.NewGame(), nil
	}

	fen, err := chess.FEN(fenstr)
	if err != nil {
		return nil, fmt.Errorf("chess oracle: %w", err)
	}

	return chess.NewGame(fen), nil
}

func replay(start string, moves []string) (*chess.Game, error) {
	game, err := newGame(start)
	if err != nil {
		return nil, err
	}

	for _, mov := range moves {
		if err := playSAN(game, mov); err != nil {
			return nil, fmt.Errorf("chess oracle: replay: %w", err)
		}
	}

	return game, nil
}

// playSAN plays the legal move whose SAN is exactly mov_str.
func playSAN(game *chess.Game, mov_str string) error {
	if game.Outcome() != chess.NoOutcome {
		return fmt.Errorf("%w: %s: game is over", ErrIllegalMove, mov_str)
	}

	notation := chess.AlgebraicNotation{}
	position := game.Position()

	for _, mov := range game.ValidMoves() {
		if notation.Encode(position, mov) == mov_str {
			return game.Move(mov)
		}
	}

	return fmt.Errorf("%w: %s", ErrIllegalMove, mov_str)
}

func sanMoves(game *chess.Game) []string {
	if game.Outcome() != chess.NoOutcome {
		return nil
	}

	notation := chess.AlgebraicNotation{}
	position := game.Position()

	valid := game.ValidMoves()
	moves := make([]string, 0, len(valid))
	for _, mov := range valid {
		moves = append(moves, notation.Encode(position, mov))
	}

	return moves
}
