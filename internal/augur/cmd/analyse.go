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
	"os"
	"os/signal"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/augur/internal/util"
	"laptudirm.com/x/augur/pkg/uci"
)

func Analyse() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analyse [ fen | startpos ]",
		Aliases: []string{"analyze"},
		Short:   "Ask the oracle for the best move in a position",
		Args:    cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`analyse runs a single search on the given position and
			prints the engine's output, exactly as a GUI would see it.

			The position is given as a FEN string, which needs to be
			quoted, or as startpos, which is also the default. Moves to
			play before searching can be given with --moves.

			Options from the configuration file and --option apply as
			usual, for example:

			    augur analyse startpos -m e2e4,e7e5 -o OutputReasoning=true`),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSession(cmd, uci.Config{
				Output: cmd.OutOrStdout(),
				Exit:   func(int) {},
			})
			if err != nil {
				return err
			}

			position := "position startpos"
			if len(args) == 1 && args[0] != "startpos" {
				position = "position fen " + args[0]
			}

			if moves, _ := cmd.Flags().GetStringSlice("moves"); len(moves) > 0 {
				position += " moves " + strings.Join(moves, " ")
			}

			if err := session.Execute(position); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if err := session.Execute("go"); err != nil {
				return err
			}

			stopSpinner := util.StartSpinner(cmd.ErrOrStderr(), "asking the oracle")
			err = session.Wait(ctx)
			stopSpinner()

			if err != nil {
				session.Shutdown()
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringSliceP("moves", "m", nil, "Moves to play before searching")
	return cmd
}
