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

var exportFormatArg string

func init() {
	rootCmd.AddCommand(createExportCmd())
}

func createExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write every contact to a CSV or vCard file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeBook, err := openBook()
			if err != nil {
				return userFacingError(err)
			}
			defer closeBook()

			switch exportFormatArg {
			case "csv":
				err = b.ExportToCSV(args[0])
			case "vcard":
				err = b.ExportToVCard(args[0])
			default:
				return formattedError("unknown format '%v', use csv or vcard", exportFormatArg)
			}
			if err != nil {
				return err
			}

			cmd.Printf("Contacts exported to %v\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&exportFormatArg, "format", "f", "csv", "export format: csv or vcard")

	return cmd
}
