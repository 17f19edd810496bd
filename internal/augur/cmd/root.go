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

	"laptudirm.com/x/augur/pkg/data"
	"laptudirm.com/x/augur/pkg/uci"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "augur",
		Short: "A UCI chess engine backed by a move oracle",
		Long: heredoc.Doc(`augur is a UCI chess engine which asks a language model for
			its moves. Run it without a command to speak UCI on standard
			input and output, the way chess GUIs and match runners expect.

			Every suggested move is checked against the legal moves of the
			position. If the oracle keeps failing, augur plays a random
			legal move instead of forfeiting.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSession(cmd, uci.Config{Output: cmd.OutOrStdout()})
			if err != nil {
				return err
			}

			session.Output().Printf("%s", data.Banner)
			return session.Run(cmd.InOrStdin())
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Augur's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().StringP("config", "c", "", "Read configuration from this file")
	root.PersistentFlags().StringArrayP("option", "o", nil, "Set an engine option, as NAME=VALUE")

	root.SetVersionTemplate(data.Version + "\n")
	root.Version = data.Version

	// Register the various commands.
	root.AddCommand(Analyse())
	root.AddCommand(Configure())

	return root
}
