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

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Thiagos25/llm-chess-arena/pkg/archive"
	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
	"github.com/Thiagos25/llm-chess-arena/pkg/stats"
)

func Stats() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [player [opponent]]",
		Short: "Shows the scores and elo estimates from the saved games",
		Args:  cobra.MaximumNArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			pairs, err := archive.List(gamesDirectory(cfg))
			if err != nil {
				return err
			}

			scores, err := tally(cmd.Context(), filterPairs(pairs, args))
			if err != nil {
				return err
			}

			printScores(cmd.OutOrStdout(), scores)
			return nil
		},
	}
}

// pairScore is the score of a pair directory's White player.
type pairScore struct {
	white, black string
	score        stats.Score
}

// tally reads the games of every pair concurrently. Files which can't be
// read are skipped with a warning.
func tally(ctx context.Context, pairs []archive.Pair) ([]pairScore, error) {
	scores := make([]pairScore, len(pairs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(8)

	for i, pair := range pairs {
		i, pair := i, pair
		group.Go(func() error {
			white, black, _ := strings.Cut(pair.Name, " vs ")
			scores[i] = pairScore{white: white, black: black}

			for _, name := range pair.Games {
				if err := ctx.Err(); err != nil {
					return err
				}

				game, err := archive.Load(filepath.Join(pair.Dir, name))
				if err != nil {
					logrus.Warnf("skipping game: %v", err)
					continue
				}

				scores[i].score.Add(game.Result, games.White)
			}

			return nil
		})
	}

	return scores, group.Wait()
}

// playerTotals merges every pair's scores into per player scores.
func playerTotals(scores []pairScore) map[string]*stats.Score {
	totals := map[string]*stats.Score{}

	add := func(player string, score stats.Score) {
		if totals[player] == nil {
			totals[player] = &stats.Score{}
		}

		totals[player].Merge(score)
	}

	for _, pair := range scores {
		add(pair.white, pair.score)
		add(pair.black, stats.Score{
			Wins:       pair.score.Losses,
			Draws:      pair.score.Draws,
			Losses:     pair.score.Wins,
			Unfinished: pair.score.Unfinished,
		})
	}

	return totals
}

func printScores(w io.Writer, scores []pairScore) {
	if len(scores) == 0 {
		fmt.Fprintln(w, color.RedString("No Games Saved."))
		return
	}

	fmt.Fprintf(w, "%s:\n\n", color.GreenString("Pairs"))
	for _, pair := range scores {
		fmt.Fprintf(w, "- %s vs %s\n  %s\n", color.BlueString("%s", pair.white), pair.black, pair.score)
		if pair.score.Unfinished > 0 {
			fmt.Fprintf(w, "  %d unfinished\n", pair.score.Unfinished)
		}
	}

	totals := playerTotals(scores)
	players := make([]string, 0, len(totals))
	for player := range totals {
		players = append(players, player)
	}

	sort.Strings(players)

	fmt.Fprintf(w, "\n%s:\n\n", color.GreenString("Players"))
	for _, player := range players {
		fmt.Fprintf(w, "- %s\n  %s\n", color.BlueString("%s", player), totals[player])
	}
}
