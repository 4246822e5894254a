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
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

// pgn movetext line width
const lineWidth = 80

// Move is an accepted move of a game.
type Move struct {
	SAN      string
	Side     games.Color
	Position games.Position // position after the move

	Player   string
	Attempts int
}

// Record is the canonical record of a game. Moves are only ever added by
// Append, and the result is set exactly once by Finalize.
type Record struct {
	Event string
	Site  string
	Date  time.Time
	Round string

	White string
	Black string

	// StartFEN is empty for games from the standard position.
	StartFEN string

	result      Result
	termination games.Termination
	finalized   bool

	moves []Move
}

func NewRecord(white, black string) *Record {
	return &Record{
		Event: "?",
		Site:  "?",
		Date:  time.Now(),
		Round: "?",

		White: white,
		Black: black,
	}
}

// Append adds an accepted move at the end of the game.
func (record *Record) Append(move Move) error {
	if record.finalized {
		return ErrRecordFinalized
	}

	record.moves = append(record.moves, move)
	return nil
}

// Finalize sets the result of the game and closes the record.
func (record *Record) Finalize(result Result, term games.Termination) error {
	if record.finalized {
		return ErrRecordFinalized
	}

	record.result = result
	record.termination = term
	record.finalized = true
	return nil
}

func (record *Record) Finalized() bool                { return record.finalized }
func (record *Record) Result() Result                 { return record.result }
func (record *Record) Termination() games.Termination { return record.termination }
func (record *Record) Len() int                       { return len(record.moves) }

// Moves returns a copy of the accepted moves.
func (record *Record) Moves() []Move {
	return append([]Move(nil), record.moves...)
}

// LastMove returns the notation of the last accepted move, or the empty
// string if there are none.
func (record *Record) LastMove() string {
	if len(record.moves) == 0 {
		return ""
	}

	return record.moves[len(record.moves)-1].SAN
}

// Movetext returns the numbered moves of the game on a single line,
// without a result token.
func (record *Record) Movetext() string {
	return strings.Join(record.tokens(), " ")
}

// PGN returns the record as a PGN document.
func (record *Record) PGN() string {
	var buffer bytes.Buffer
	record.WriteTo(&buffer)
	return buffer.String()
}

// WriteTo writes the record as a PGN document: the Seven Tag Roster, the
// setup tags if needed, and the movetext ending with the result.
func (record *Record) WriteTo(w io.Writer) (int64, error) {
	var buffer bytes.Buffer

	tag := func(name, value string) {
		fmt.Fprintf(&buffer, "[%s \"%s\"]\n", name, escape(value))
	}

	date := "????.??.??"
	if !record.Date.IsZero() {
		date = record.Date.Format("2006.01.02")
	}

	tag("Event", orUnknown(record.Event))
	tag("Site", orUnknown(record.Site))
	tag("Date", date)
	tag("Round", orUnknown(record.Round))
	tag("White", orUnknown(record.White))
	tag("Black", orUnknown(record.Black))
	tag("Result", record.result.String())

	if record.StartFEN != "" {
		tag("SetUp", "1")
		tag("FEN", record.StartFEN)
	}

	buffer.WriteByte('\n')

	line := 0
	for _, token := range append(record.tokens(), record.result.String()) {
		if line > 0 && line+1+len(token) > lineWidth {
			buffer.WriteByte('\n')
			line = 0
		}

		if line > 0 {
			buffer.WriteByte(' ')
			line++
		}

		buffer.WriteString(token)
		line += len(token)
	}

	buffer.WriteString("\n\n")
	return buffer.WriteTo(w)
}

// tokens returns the movetext tokens with move numbers attached to the
// moves they belong to, like "1." "e4" "e5" or "3..." "Nf6".
func (record *Record) tokens() []string {
	number := 1
	if record.StartFEN != "" {
		if fields := strings.Fields(record.StartFEN); len(fields) == 6 {
			if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
				number = n
			}
		}
	}

	tokens := make([]string, 0, len(record.moves)*3/2)
	for i, move := range record.moves {
		switch {
		case move.Side == games.White:
			tokens = append(tokens, strconv.Itoa(number)+".")
		case i == 0:
			tokens = append(tokens, strconv.Itoa(number)+"...")
		}

		tokens = append(tokens, move.SAN)

		if move.Side == games.Black {
			number++
		}
	}

	return tokens
}

func escape(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

func orUnknown(value string) string {
	if value == "" {
		return "?"
	}

	return value
}
