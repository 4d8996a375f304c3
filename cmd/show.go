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
	"github.com/agendadev/agenda/contact"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createShowCmd())
}

func createShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one contact by its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			b, closeBook, err := openBook()
			if err != nil {
				return userFacingError(err)
			}
			defer closeBook()

			c, err := b.Get(id)
			if err != nil {
				return userFacingError(err)
			}
			if c == nil {
				cmd.Printf("Contact %v not found\n", id)
				return nil
			}

			printContacts(cmd, []contact.Contact{*c})
			return nil
		},
	}
}
