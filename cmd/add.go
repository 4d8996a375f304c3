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

// The record field flags are shared by 'add' and 'update'.
var (
	firstNameArg string
	lastNameArg  string
	phoneArg     string
	emailArg     string
)

func init() {
	rootCmd.AddCommand(createAddCmd())
}

func createAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new contact to the book",
		Long: `Validates the given contact and stores it. The first field that
breaks a rule is reported; nothing is stored until every field passes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeBook, err := openBook()
			if err != nil {
				return userFacingError(err)
			}
			defer closeBook()

			c := contact.New(firstNameArg, lastNameArg, phoneArg, emailArg)
			if err := b.Add(c); err != nil {
				return userFacingError(err)
			}

			cmd.Printf("Contact %v added\n", c.FullName())
			return nil
		},
	}

	addContactFieldFlags(cmd)

	return cmd
}

func addContactFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&firstNameArg, "first-name", "n", "", "first name of the contact")
	cmd.Flags().StringVarP(&lastNameArg, "last-name", "l", "", "last name of the contact")
	cmd.Flags().StringVarP(&phoneArg, "phone", "p", "", "phone number, digits only")
	cmd.Flags().StringVarP(&emailArg, "email", "e", "", "email address")
}
