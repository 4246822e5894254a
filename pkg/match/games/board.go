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
	"strings"
)

// Squares returns the piece placement of a FEN string indexed as
// [rank][file], with rank 0 being the eighth rank. Empty squares are 0,
// pieces are their FEN letters.
func Squares(fen string) ([8][8]byte, error) {
	var board [8][8]byte

	placement, _, _ := strings.Cut(strings.TrimSpace(fen), " ")
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return board, fmt.Errorf("squares: %d ranks in placement %q", len(ranks), placement)
	}

	for rank, row := range ranks {
		file := 0
		for i := 0; i < len(row); i++ {
			char := row[i]
			switch {
			case char >= '1' && char <= '8':
				file += int(char - '0')
			case strings.IndexByte("pnbrqkPNBRQK", char) >= 0:
				if file >= 8 {
					return board, fmt.Errorf("squares: rank %d overflows", 8-rank)
				}

				board[rank][file] = char
				file++
			default:
				return board, fmt.Errorf("squares: bad character %q", char)
			}
		}

		if file != 8 {
			return board, fmt.Errorf("squares: rank %d has %d files", 8-rank, file)
		}
	}

	return board, nil
}
