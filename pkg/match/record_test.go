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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

func appendMoves(t *testing.T, record *Record, first games.Color, moves ...string) {
	t.Helper()

	side := first
	for _, san := range moves {
		require.NoError(t, record.Append(Move{SAN: san, Side: side}))
		side = side.Other()
	}
}

func TestRecordFinalizeOnce(t *testing.T) {
	record := NewRecord("Human", "GPT-4")
	appendMoves(t, record, games.White, "e4", "e5")

	require.NoError(t, record.Finalize(Draw, games.Stalemate))
	assert.True(t, record.Finalized())

	assert.ErrorIs(t, record.Append(Move{SAN: "Nf3"}), ErrRecordFinalized)
	assert.ErrorIs(t, record.Finalize(WhiteWins, games.Checkmate), ErrRecordFinalized)

	assert.Equal(t, 2, record.Len())
	assert.Equal(t, Draw, record.Result())
	assert.Equal(t, games.Stalemate, record.Termination())
}

func TestRecordPGN(t *testing.T) {
	record := NewRecord("Human", "GPT-4")
	record.Date = time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	appendMoves(t, record, games.White, "f3", "e5", "g4", "Qh4#")
	require.NoError(t, record.Finalize(BlackWins, games.Checkmate))

	want := strings.Join([]string{
		`[Event "?"]`,
		`[Site "?"]`,
		`[Date "2024.03.09"]`,
		`[Round "?"]`,
		`[White "Human"]`,
		`[Black "GPT-4"]`,
		`[Result "0-1"]`,
		``,
		`1. f3 e5 2. g4 Qh4# 0-1`,
		``,
		``,
	}, "\n")

	assert.Equal(t, want, record.PGN())
	assert.Equal(t, "1. f3 e5 2. g4 Qh4#", record.Movetext())
	assert.Equal(t, "Qh4#", record.LastMove())
}

func TestRecordPGNFromPosition(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 7"

	record := NewRecord(`The "Human"`, "GPT-4")
	record.StartFEN = fen
	appendMoves(t, record, games.Black, "e5", "Nf3")
	require.NoError(t, record.Finalize(Unknown, games.Ongoing))

	pgn := record.PGN()
	assert.Contains(t, pgn, `[White "The \"Human\""]`)
	assert.Contains(t, pgn, "[SetUp \"1\"]\n[FEN \""+fen+"\"]\n")
	assert.Contains(t, pgn, "\n7... e5 8. Nf3 *\n")
}

func TestRecordPGNWrapsMovetext(t *testing.T) {
	record := NewRecord("a", "b")

	moves := []string{}
	for i := 0; i < 40; i++ {
		moves = append(moves, "Nf3", "Nf6", "Ng1", "Ng8")
	}

	appendMoves(t, record, games.White, moves...)
	require.NoError(t, record.Finalize(Draw, games.FivefoldRepetition))

	pgn := record.PGN()
	body := pgn[strings.Index(pgn, "\n\n")+2:]
	lines := strings.Split(strings.TrimSpace(body), "\n")

	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 80)
	}

	assert.True(t, strings.HasSuffix(lines[len(lines)-1], " 1/2-1/2"))
	assert.Equal(t, record.Movetext()+" 1/2-1/2", strings.Join(lines, " "))
}
