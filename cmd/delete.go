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
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createDeleteCmd())
}

func createDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a contact from the book",
		Long: `Removes the record with the given id. The id is never handed out
again. Deleting an id that does not exist is not an error.`,
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

			if err := b.Delete(id); err != nil {
				return userFacingError(err)
			}

			cmd.Printf("Contact %v deleted\n", id)
			return nil
		},
	}
}
