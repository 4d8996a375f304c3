/*
Copyright © 2026 Agenda Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/agendadev/agenda/server"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createServerCmd())
}

func createServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the agenda HTTP API and backup scheduler",
		Long: `Serves the contact book over a local JSON API and keeps the
scheduled database backups running. Stop it with Ctrl-C; the last
thing it does is back up the database once more.`,
		Run: func(cmd *cobra.Command, args []string) {
			server.Start(appConfig)
		},
	}
}
