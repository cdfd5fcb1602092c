/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config binds the settings of the CLI to flags and environment
// variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read by the CLI.
// COEDIT_RPC_ADDR sets rpcAddr, for example.
const EnvPrefix = "COEDIT"

// ErrInvalidOutput occurs when the output format is not supported.
var ErrInvalidOutput = errors.New(`--output must be 'yaml' or 'json'`)

// BindFlags binds the persistent flags of the root command to viper.
func BindFlags(rootCmd *cobra.Command) {
	for key, flag := range map[string]string{
		"rpcAddr": "rpc-addr",
		"output":  "output",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Errorf("bind flag %s: %w", flag, err))
		}
		if err := viper.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))); err != nil {
			panic(fmt.Errorf("bind env %s: %w", flag, err))
		}
	}
}

// Preload validates the shared settings before a command runs.
func Preload(_ *cobra.Command, _ []string) error {
	output := viper.GetString("output")
	if output != "" && output != "yaml" && output != "json" {
		return ErrInvalidOutput
	}
	return nil
}
