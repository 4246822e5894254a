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
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Thiagos25/llm-chess-arena/pkg/archive"
)

func Games() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games [player [opponent]]",
		Short: "Lists the saved games",
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

			verbose, _ := cmd.Flags().GetBool("list")
			listGames(cmd.OutOrStdout(), filterPairs(pairs, args), verbose)
			return nil
		},
	}

	cmd.Flags().BoolP("list", "l", false, "List every game file")
	return cmd
}

// filterPairs keeps the pairs involving the given players, in any order.
func filterPairs(pairs []archive.Pair, players []string) []archive.Pair {
	if len(players) == 0 {
		return pairs
	}

	var filtered []archive.Pair
	for _, pair := range pairs {
		white, black, _ := strings.Cut(pair.Name, " vs ")

		keep := true
		for _, player := range players {
			player = archive.Sanitize(player)
			if player != white && player != black {
				keep = false
			}
		}

		if keep {
			filtered = append(filtered, pair)
		}
	}

	return filtered
}

func listGames(w io.Writer, pairs []archive.Pair, verbose bool) {
	found_game := false

	for _, pair := range pairs {
		if len(pair.Games) == 0 {
			continue
		}

		if !found_game {
			found_game = true
			fmt.Fprintf(w, "%s:\n\n", color.GreenString("Saved Games"))
		}

		name := color.BlueString("%s", pair.Name) + ":"
		fmt.Fprintf(w, "- %-30s %d games\n", name, len(pair.Games))

		if verbose {
			for _, game := range pair.Games {
				fmt.Fprintf(w, "    %s\n", game)
			}
		}
	}

	if !found_game {
		fmt.Fprintln(w, color.RedString("No Games Saved."))
	}
}
