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

// Package games contains the rules oracles used by the match runner. An
// oracle is the only authority on legality: the rest of the arena never
// decides whether a move is legal on its own.
package games

import "errors"

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrIllegalMove is returned by Oracle.Apply when the given notation is not
// a legal move in the given position.
var ErrIllegalMove = errors.New("illegal move")

func GetOracle(name string) Oracle {
	switch name {
	case "chess", "":
		return &ChessOracle{}
	default:
		return nil
	}
}

// Oracle is the rules engine contract consumed by the match runner.
// Positions are values: Apply never modifies the position it is given.
type Oracle interface {
	// Initialize returns the position described by the given FEN string,
	// or the standard starting position if fen is empty.
	Initialize(fen string) (Position, error)

	// LegalMoves returns the canonical notation of every legal move.
	LegalMoves(pos Position) []string

	// Apply plays the given move and returns the resulting position.
	Apply(pos Position, mov string) (Position, error)

	// Termination reports whether the position ends the game, and how.
	Termination(pos Position) Termination
}

// Position is an opaque board state owned by an Oracle.
type Position interface {
	FEN() string
	SideToMove() Color

	// String returns a plain text drawing of the board.
	String() string
}

type Color uint8

const (
	White Color = iota
	Black

	ColorN = 2
)

func (color Color) Other() Color {
	return color ^ 1
}

func (color Color) String() string {
	switch color {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Termination is the way a game ended, or Ongoing.
type Termination uint8

const (
	Ongoing Termination = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	SeventyFiveMoveRule
	FivefoldRepetition
)

func (term Termination) String() string {
	switch term {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case InsufficientMaterial:
		return "Insufficient Material"
	case SeventyFiveMoveRule:
		return "75-move Rule"
	case FivefoldRepetition:
		return "Fivefold Repetition"
	default:
		return "Ongoing"
	}
}
