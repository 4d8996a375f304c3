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
	rootCmd.AddCommand(createImportCmd())
}

func createImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import contacts from a CSV file",
		Long: `Reads 'first name,last name,phone,email' rows and stores each one.
The import stops at the first malformed row and reports its number;
rows imported before it stay in the book.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeBook, err := openBook()
			if err != nil {
				return userFacingError(err)
			}
			defer closeBook()

			count, err := b.ImportFromCSV(args[0])
			if err != nil {
				return err
			}

			cmd.Printf("%v contact(s) imported\n", count)
			return nil
		},
	}
}
