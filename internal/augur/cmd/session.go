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
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/augur/pkg/config"
	"laptudirm.com/x/augur/pkg/uci"
)

func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}

	return config.File
}

// newSession creates a session with the options from the configuration
// file and the command line applied, in that order.
func newSession(cmd *cobra.Command, sessionConfig uci.Config) (*uci.Session, error) {
	file, err := config.Load(configPath(cmd))
	if err != nil {
		return nil, err
	}

	if !cmd.Flag("trace").Changed {
		level, err := file.Level()
		if err != nil {
			return nil, err
		}

		logrus.SetLevel(level)
	}

	session := uci.NewSession(sessionConfig)

	// a bad option in the file shouldn't stop the engine from starting
	if err := session.Options().Apply(file.Options); err != nil {
		logrus.WithError(err).Warn("some configured options were not applied")
	}

	flags, _ := cmd.Flags().GetStringArray("option")
	for _, flag := range flags {
		name, value, err := parseOption(flag)
		if err != nil {
			return nil, err
		}

		if err := session.Options().Set(name, value); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// parseOption parses an option flag of the form NAME=VALUE.
func parseOption(flag string) (name, value string, err error) {
	name, value, found := strings.Cut(flag, "=")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return "", "", fmt.Errorf("option %q is not of the form NAME=VALUE", flag)
	}

	return name, value, nil
}
