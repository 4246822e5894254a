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
	"regexp"
	"strings"
)

// MoveMarker is the phrase which precedes the move in an agent's response.
const MoveMarker = "My move:"

var moveRegex = regexp.MustCompile(regexp.QuoteMeta(MoveMarker) + `\s*(\S+)`)

// ParseMove extracts the candidate move from an agent's free-form
// response. It only isolates the token following MoveMarker, stripped of
// quotes and sentence punctuation; whether the move is legal is decided
// by the oracle.
func ParseMove(raw string) (string, error) {
	match := moveRegex.FindStringSubmatch(raw)
	if match == nil {
		return "", &UnparsableResponseError{Raw: raw}
	}

	// My move: "Nf3". -> Nf3
	token := strings.Trim(match[1], "\"'`*")
	token = strings.TrimRight(token, ".,;:")
	token = strings.Trim(token, "\"'`*")

	if token == "" {
		return "", &UnparsableResponseError{Raw: raw}
	}

	return token, nil
}
