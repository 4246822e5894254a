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
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Thiagos25/llm-chess-arena/pkg/common"
	"github.com/Thiagos25/llm-chess-arena/pkg/config"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "arena",
		Short: "Play chess against a language model",
		Long: heredoc.Doc(`arena runs chess matches between people and language
			models, keeping every model honest by checking its moves
			against the rules and asking again when they are wrong.

			Finished games are saved as PGN files in ~/arena/games.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			} else if cmd.Flag("debug").Changed {
				logrus.SetLevel(logrus.DebugLevel)
			}

			return common.Setup()
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Arena's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().BoolP("debug", "d", false, "Show Debug Information")
	root.PersistentFlags().StringP("config", "c", common.ConfigFile, "Configuration file to use")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Play())
	root.AddCommand(Games())
	root.AddCommand(Stats())

	return root
}

// loadConfig loads the configuration file named by the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	logrus.Debugf("loading config from %s", path)
	return config.Load(path)
}

// gamesDirectory returns the directory games are saved in.
func gamesDirectory(cfg *config.Config) string {
	if cfg.GamesDir != "" {
		return cfg.GamesDir
	}

	return common.GamesDirectory
}
