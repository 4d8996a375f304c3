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
	rootCmd.AddCommand(createUpdateCmd())
}

func createUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Overwrite every field of a stored contact",
		Long: `Replaces the whole record: pass all four fields, not just the ones
that changed. Updating an id that was never stored changes nothing.`,
		Args: cobra.ExactArgs(1),
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

			c := contact.New(firstNameArg, lastNameArg, phoneArg, emailArg)
			c.ID = id

			if err := b.Update(c); err != nil {
				return userFacingError(err)
			}

			cmd.Printf("Contact %v updated\n", id)
			return nil
		},
	}

	addContactFieldFlags(cmd)

	return cmd
}
