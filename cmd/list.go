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
	"fmt"
	"text/tabwriter"

	"github.com/agendadev/agenda/contact"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createListCmd())
}

func createListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every contact in the book",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeBook, err := openBook()
			if err != nil {
				return userFacingError(err)
			}
			defer closeBook()

			printContacts(cmd, b.ListAll())
			return nil
		},
	}
}

// printContacts renders contacts as an aligned table, 'list', 'search'
// and 'show' all share it.
func printContacts(cmd *cobra.Command, contacts []contact.Contact) {
	if len(contacts) == 0 {
		cmd.Println("No contacts found")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIRST NAME\tLAST NAME\tPHONE\tEMAIL")
	for _, c := range contacts {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", c.ID, c.FirstName, c.LastName, c.PhoneNumber, c.Email)
	}
	w.Flush()
}
