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

package document

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/client"
	"github.com/yorkie-team/coedit/cmd/coedit/config"
)

var timeout time.Duration

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Short:   "List the live documents of the server",
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			documents, err := client.ListDocuments(ctx, viper.GetString("rpcAddr"))
			if err != nil {
				return err
			}

			return printDocuments(cmd, viper.GetString("output"), documents)
		},
	}
}

func printDocuments(cmd *cobra.Command, output string, documents []types.DocumentSummary) error {
	switch output {
	case "":
		tw := table.NewWriter()
		tw.Style().Options.DrawBorder = false
		tw.Style().Options.SeparateColumns = false
		tw.Style().Options.SeparateFooter = false
		tw.Style().Options.SeparateHeader = false
		tw.Style().Options.SeparateRows = false
		tw.AppendHeader(table.Row{
			"ID",
			"VERSION",
			"LENGTH",
			"COLLABORATORS",
			"LOCKED BY",
			"LAST MODIFIED",
			"LAST MODIFIED BY",
		})
		for _, document := range documents {
			lastModified := ""
			if !document.LastModified.IsZero() {
				lastModified = time.Since(document.LastModified).Round(time.Second).String()
			}
			tw.AppendRow(table.Row{
				document.ID,
				document.Version,
				document.ContentLength,
				document.Collaborators,
				document.LockedBy,
				lastModified,
				document.LastModifiedBy,
			})
		}
		cmd.Printf("%s\n", tw.Render())
	case "json":
		jsonOutput, err := json.MarshalIndent(documents, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		cmd.Println(string(jsonOutput))
	case "yaml":
		yamlOutput, err := yaml.Marshal(documents)
		if err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}
		cmd.Println(string(yamlOutput))
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}

	return nil
}

func init() {
	cmd := newListCommand()
	cmd.Flags().DurationVar(
		&timeout,
		"timeout",
		5*time.Second,
		"Timeout of the request",
	)
	SubCmd.AddCommand(cmd)
}
