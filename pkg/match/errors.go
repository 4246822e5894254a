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
	"errors"
	"fmt"

	"github.com/Thiagos25/llm-chess-arena/pkg/llm"
	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

var (
	// ErrInputClosed is returned when a human player's input ends.
	ErrInputClosed = errors.New("match: input channel closed")

	// ErrQuit is returned when a human player asks to leave the match.
	ErrQuit = errors.New("match: player quit")

	// ErrAbandoned is returned when a turn is abandoned between attempts
	// because the match's context is done.
	ErrAbandoned = errors.New("match: turn abandoned")

	// ErrServiceUnavailable is returned when the text generation service
	// could not be reached, even after retrying.
	ErrServiceUnavailable = llm.ErrServiceUnavailable

	// ErrRecordFinalized is returned when a finalized record is modified.
	ErrRecordFinalized = errors.New("match: record already finalized")
)

// UnparsableResponseError is returned when an agent's response does not
// contain a move. The response is kept for diagnostics.
type UnparsableResponseError struct {
	Raw string
}

func (err *UnparsableResponseError) Error() string {
	return fmt.Sprintf("match: no move found in response %q", err.Raw)
}

// IllegalMoveError is returned when a proposed move is not legal in the
// current position.
type IllegalMoveError struct {
	Move string
	Err  error
}

func (err *IllegalMoveError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("match: illegal move %q: %v", err.Move, err.Err)
	}

	return fmt.Sprintf("match: illegal move %q", err.Move)
}

func (err *IllegalMoveError) Unwrap() error {
	if err.Err == nil {
		return games.ErrIllegalMove
	}

	return err.Err
}

// AttemptsExhaustedError is returned when an agent fails to produce a
// legal move within the configured number of attempts.
type AttemptsExhaustedError struct {
	Player   string
	Attempts int
	Last     error
}

func (err *AttemptsExhaustedError) Error() string {
	return fmt.Sprintf("match: %s made no legal move in %d attempts: %v", err.Player, err.Attempts, err.Last)
}

// Retryable reports whether err is recovered from inside a turn by asking
// the player for another move.
func Retryable(err error) bool {
	var unparsable *UnparsableResponseError
	var illegal *IllegalMoveError
	return errors.As(err, &unparsable) || errors.As(err, &illegal)
}
