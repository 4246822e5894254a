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

package stats

import (
	"fmt"
	"math"

	"github.com/Thiagos25/llm-chess-arena/pkg/match"
	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

// Score is the tally of a player's finished games against one opponent.
// Games without a result are counted separately and never scored.
type Score struct {
	Wins, Draws, Losses int
	Unfinished          int
}

// Add counts a game with the given result, played with the given color.
func (score *Score) Add(result match.Result, color games.Color) {
	switch result {
	case match.Draw:
		score.Draws++
	case match.WhiteWins, match.BlackWins:
		if match.GameLostBy[color] == result {
			score.Losses++
		} else {
			score.Wins++
		}
	default:
		score.Unfinished++
	}
}

// Merge adds the games of another score to this one.
func (score *Score) Merge(other Score) {
	score.Wins += other.Wins
	score.Draws += other.Draws
	score.Losses += other.Losses
	score.Unfinished += other.Unfinished
}

// Games returns the number of finished games.
func (score Score) Games() int {
	return score.Wins + score.Draws + score.Losses
}

// Points returns the score in the usual 1, 1/2, 0 points per game.
func (score Score) Points() float64 {
	return float64(score.Wins) + float64(score.Draws)/2
}

func (score Score) Elo() (muMin float64, mu float64, muMax float64) {
	return Elo(score.Wins, score.Draws, score.Losses)
}

func (score Score) String() string {
	muMin, mu, muMax := score.Elo()
	return fmt.Sprintf(
		"W: %d, D: %d, L: %d (%.1f/%d) elo %.2f ± %s",
		score.Wins, score.Draws, score.Losses,
		score.Points(), score.Games(),
		mu, errorBar(mu-muMin, muMax-mu),
	)
}

// errorBar formats the wider side of an elo interval.
func errorBar(below, above float64) string {
	bar := math.Max(below, above)
	if math.IsInf(bar, 1) {
		return "∞"
	}

	return fmt.Sprintf("%.2f", bar)
}
