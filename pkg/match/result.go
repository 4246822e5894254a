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

import "github.com/Thiagos25/llm-chess-arena/pkg/match/games"

// Result represents the result of a single match.
type Result int

const (
	Unknown   Result = iota // Game abandoned or still in progress
	WhiteWins               // 1-0
	BlackWins               // 0-1
	Draw                    // 1/2-1/2
)

// GameLostBy maps the losing side to the match's Result.
var GameLostBy = [games.ColorN]Result{
	games.White: BlackWins,
	games.Black: WhiteWins,
}

// ResultOf maps a Termination of a position with the given side to move
// to the match's Result. A checkmate is always lost by the side to move.
func ResultOf(term games.Termination, sideToMove games.Color) Result {
	switch term {
	case games.Ongoing:
		return Unknown
	case games.Checkmate:
		return GameLostBy[sideToMove]
	default:
		return Draw
	}
}

// String returns the PGN result code of the given Result.
func (result Result) String() string {
	switch result {
	case WhiteWins:
		return "1-0"
	case Draw:
		return "1/2-1/2"
	case BlackWins:
		return "0-1"
	default:
		return "*"
	}
}

// ParseResult converts a PGN result code into a Result.
func ParseResult(code string) Result {
	switch code {
	case "1-0":
		return WhiteWins
	case "0-1":
		return BlackWins
	case "1/2-1/2":
		return Draw
	default:
		return Unknown
	}
}
