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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Thiagos25/llm-chess-arena/pkg/archive"
	"github.com/Thiagos25/llm-chess-arena/pkg/common"
	"github.com/Thiagos25/llm-chess-arena/pkg/config"
	"github.com/Thiagos25/llm-chess-arena/pkg/llm"
	"github.com/Thiagos25/llm-chess-arena/pkg/match"
	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
	"github.com/Thiagos25/llm-chess-arena/pkg/render"
)

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game of chess",
		Long: heredoc.Doc(`play starts a game between the players from the configuration
			file, by default you with the white pieces against a language
			model with the black ones.

			Enter your moves in standard algebraic notation, like e4, Nf3,
			O-O or exd8=Q, and enter quit to stop the game. The model's
			moves are checked against the rules, and the model is asked
			again, with the list of legal moves, until it finds one.

			The game is saved when it ends, even if it was stopped early.`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}

			// the api key may be kept in a .env file
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				logrus.Warnf("loading .env: %v", err)
			}

			fen, _ := cmd.Flags().GetString("fen")
			noSave, _ := cmd.Flags().GetBool("no-save")

			return play(cmd, cfg, fen, !noSave)
		},
	}

	cmd.Flags().StringP("white", "w", "", "Name of the white player")
	cmd.Flags().StringP("black", "b", "", "Name of the black player")
	cmd.Flags().String("white-kind", "", "Kind of the white player (human|agent)")
	cmd.Flags().String("black-kind", "", "Kind of the black player (human|agent)")
	cmd.Flags().StringP("model", "m", "", "Model used by the agent players")
	cmd.Flags().IntP("max-attempts", "a", 0, "Attempts an agent gets per move, 0 for no limit")
	cmd.Flags().String("exhausted", "", "What to do when an agent runs out of attempts (abandon|human)")
	cmd.Flags().StringP("fen", "f", "", "Position to start the game from")
	cmd.Flags().String("theme", "", "Board color theme (off|brown|green|gray)")
	cmd.Flags().String("svg", "", "Keep an SVG image of the board at this path")
	cmd.Flags().String("games-dir", "", "Directory to save games in")
	cmd.Flags().Bool("no-save", false, "Don't save the game")

	return cmd
}

// applyFlags overrides the configuration with the flags that were set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	str := func(name string, target *string) {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}

	str("white", &cfg.White.Name)
	str("black", &cfg.Black.Name)
	str("white-kind", &cfg.White.Kind)
	str("black-kind", &cfg.Black.Kind)
	str("exhausted", &cfg.Negotiation.Exhausted)
	str("theme", &cfg.Display.Theme)
	str("svg", &cfg.Display.SVG)
	str("games-dir", &cfg.GamesDir)

	if flags.Changed("model") {
		model, _ := flags.GetString("model")
		for _, player := range cfg.Players() {
			if player.Kind == "agent" {
				player.Model = model
			}
		}
	}

	if flags.Changed("max-attempts") {
		cfg.Negotiation.MaxAttempts, _ = flags.GetInt("max-attempts")
	}

	return cfg.Validate()
}

func play(cmd *cobra.Command, cfg *config.Config, fen string, save bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	id := uuid.New()
	log := logrus.WithField("match", id.String())

	input, err := match.NewLineInput(common.Directory)
	if err != nil {
		return err
	}

	defer input.Close()

	output := cmd.OutOrStdout()

	players, err := newPlayers(cfg, input, output)
	if err != nil {
		return err
	}

	negotiator, err := newNegotiator(cfg, players)
	if err != nil {
		return err
	}

	renderer, err := newRenderer(cfg, output)
	if err != nil {
		return err
	}

	record := match.NewRecord(players[games.White].Name(), players[games.Black].Name())
	record.Event = cfg.Event
	record.Site = cfg.Site

	log.WithFields(logrus.Fields{
		"white": record.White,
		"black": record.Black,
	}).Info("starting game")

	record, runErr := match.Run(ctx, &match.Config{
		PositionFEN: fen,
		Players:     players,
		Negotiator:  negotiator,
		Renderer:    renderer,
		Record:      record,
		Log:         log,
	})

	printResult(output, record, runErr)

	// stopping a game is not a failure
	if errors.Is(runErr, match.ErrQuit) || errors.Is(runErr, match.ErrAbandoned) {
		runErr = nil
	}

	var result *multierror.Error
	if runErr != nil {
		result = multierror.Append(result, runErr)
	}

	if save {
		path, err := archive.Save(gamesDirectory(cfg), record)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("saving game: %w", err))
		} else {
			fmt.Fprintf(output, "Game saved to %s\n", path)
		}
	}

	return result.ErrorOrNil()
}

func newPlayers(cfg *config.Config, input match.LineReader, output io.Writer) ([games.ColorN]match.Player, error) {
	var players [games.ColorN]match.Player

	for i, player := range cfg.Players() {
		kind, err := match.ParseKind(player.Kind)
		if err != nil {
			return players, err
		}

		side := games.Color(i)
		switch kind {
		case match.Human:
			players[side] = match.NewHumanPlayer(player.Name, input, output)

		case match.Agent:
			client, err := llm.NewClient(llm.ClientConfig{
				APIKey:      os.Getenv(cfg.Service.APIKeyEnv),
				BaseURL:     cfg.Service.BaseURL,
				Model:       player.Model,
				Temperature: player.Temperature,
				Timeout:     cfg.Service.Timeout,
				MaxElapsed:  cfg.Service.MaxElapsed,
			})
			if err != nil {
				return players, err
			}

			agent := match.AgentConfig{
				Name:     player.Name,
				Language: cfg.Service.Language,
			}

			if cfg.Service.MaxElapsed > 0 {
				agent.Timeout = cfg.Service.MaxElapsed + cfg.Service.Timeout
			}

			if term.IsTerminal(int(os.Stderr.Fd())) {
				agent.Spinner = os.Stderr
			}

			players[side] = match.NewAgentPlayer(agent, side, client)
		}
	}

	return players, nil
}

func newNegotiator(cfg *config.Config, players [games.ColorN]match.Player) (*match.Negotiator, error) {
	policy, err := match.ParseExhaustedPolicy(cfg.Negotiation.Exhausted)
	if err != nil {
		return nil, err
	}

	negotiator := &match.Negotiator{
		MaxAttempts: cfg.Negotiation.MaxAttempts,
		Exhausted:   policy,
	}

	if policy == match.HandOver {
		for _, player := range players {
			if player.Kind() == match.Human {
				negotiator.Override = player
				break
			}
		}

		if negotiator.Override == nil {
			return nil, errors.New("no human player to hand moves over to")
		}
	}

	return negotiator, nil
}

func newRenderer(cfg *config.Config, output io.Writer) (match.Renderer, error) {
	terminal, err := render.NewTerminal(output, render.Theme(cfg.Display.Theme))
	if err != nil {
		return nil, err
	}

	if cfg.Display.SVG == "" {
		return terminal, nil
	}

	return render.Multi{terminal, render.NewSVG(cfg.Display.SVG)}, nil
}

func printResult(output io.Writer, record *match.Record, err error) {
	result := record.Result()

	reason := record.Termination().String()
	if result == match.Unknown && err != nil {
		reason = "stopped: " + err.Error()
	}

	fmt.Fprintf(output, "\n%s %s (%s)\n", color.New(color.FgGreen).Sprint("Result:"), result, reason)
}
