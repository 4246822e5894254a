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
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

func TestHumanReadsTrimmedLines(t *testing.T) {
	var output bytes.Buffer
	human := NewHumanPlayer("Human", NewScannerInput(strings.NewReader("  e4 \n\tNf3\n")), &output)

	move, err := human.Propose(context.Background(), Proposal{Side: games.White, Legal: []string{"e4", "Nf3"}})
	require.NoError(t, err)
	assert.Equal(t, "e4", move)

	move, err = human.Propose(context.Background(), Proposal{Side: games.White, Retry: true})
	require.NoError(t, err)
	assert.Equal(t, "Nf3", move)

	assert.Contains(t, output.String(), "e4 Nf3")
	assert.Contains(t, output.String(), "white")
	assert.Contains(t, output.String(), "Invalid move")
}

func TestHumanQuit(t *testing.T) {
	for _, word := range []string{"quit", "exit", " QUIT "} {
		human := NewHumanPlayer("Human", NewScannerInput(strings.NewReader(word+"\n")), nil)

		_, err := human.Propose(context.Background(), Proposal{})
		assert.ErrorIs(t, err, ErrQuit, word)
	}
}

func TestHumanResignIsNotQuit(t *testing.T) {
	human := NewHumanPlayer("Human", NewScannerInput(strings.NewReader("resign\n")), nil)

	move, err := human.Propose(context.Background(), Proposal{})
	require.NoError(t, err)
	assert.Equal(t, "resign", move)
}

func TestHumanInputClosed(t *testing.T) {
	human := NewHumanPlayer("Human", NewScannerInput(strings.NewReader("")), nil)

	_, err := human.Propose(context.Background(), Proposal{})
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.False(t, Retryable(err))
}
