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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`My move: "Nf3" blah blah`, "Nf3"},
		{`My move: e4`, "e4"},
		{"My move:e4", "e4"},
		{"1. My move: \"Qxf7#\".\n2. It mates.", "Qxf7#"},
		{"Let me think.\n\nMy move: 'O-O', castling is safest.", "O-O"},
		{"My move: `exd5`,", "exd5"},
		{"My move: **Bb5+**", "Bb5+"},
		{"My move: e8=Q!", "e8=Q!"},
		{"My move: Nf3 and then My move: e4", "Nf3"},
	}

	for _, test := range tests {
		got, err := ParseMove(test.raw)
		require.NoError(t, err, test.raw)
		assert.Equal(t, test.want, got, test.raw)
	}
}

func TestParseMoveUnparsable(t *testing.T) {
	for _, raw := range []string{
		"",
		"I would play e4.",
		"my move: e4",
		"My move:",
		"My move:   \n",
		`My move: ""`,
	} {
		_, err := ParseMove(raw)

		var unparsable *UnparsableResponseError
		require.ErrorAs(t, err, &unparsable, raw)
		assert.Equal(t, raw, unparsable.Raw)
		assert.True(t, Retryable(err))
	}
}
