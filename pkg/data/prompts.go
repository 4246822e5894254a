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

package data

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
)

// LegalMovesHeader introduces the legal move list in a retry prompt.
const LegalMovesHeader = "Here's a list of valid moves in this position:"

// SystemPrompt is sent once per match and never changes between turns.
func SystemPrompt(color, language string) string {
	if language == "" {
		language = "English"
	}

	return heredoc.Docf(`
		You are a Chess Grandmaster.
		We are currently playing chess.
		You are playing with the %s pieces.

		I will give you the last move, the history of the game so far, the
		actual board position and you must analyze the position and find the best move.

		# OUTPUT
		Do not use any special characters.
		Give your response in the following order:

		1. Your move, using the following format: My move: "Move" (in the SAN notation, in english).
		2. The explanation, in %s, of why you chose the move, in no more than 3 sentences.
	`, color, language)
}

// MovePrompt is the first request of a turn.
func MovePrompt(history, lastMove string) string {
	return heredoc.Docf(`
		Here's the history of the game:
		%s

		The last move played was:
		%s

		Find the best move.
	`, orNone(history), orNone(lastMove))
}

// RetryPrompt is sent on every later attempt of a turn. It spells out the
// board and the legal moves so that the agent only has to pick one.
func RetryPrompt(board, history, lastMove string, legal []string) string {
	return heredoc.Docf(`
		Here's the actual board position:
		%s

		Here is the game history so far:
		%s

		The last move played was:
		%s

		%s
		%s

		You must choose one of the valid moves.
	`, board, orNone(history), orNone(lastMove), LegalMovesHeader, strings.Join(legal, ", "))
}

func orNone(text string) string {
	if strings.TrimSpace(text) == "" {
		return "None"
	}

	return text
}
