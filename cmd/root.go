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
	"strconv"

	"github.com/agendadev/agenda/book"
	"github.com/agendadev/agenda/config"
	"github.com/agendadev/agenda/contact"
	"github.com/agendadev/agenda/googleservice"
	"github.com/agendadev/agenda/logger"
	"github.com/agendadev/agenda/store"
	"github.com/agendadev/agenda/version"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	appConfig *config.Config
	googleAPI googleservice.GCalendarAPIInterface

	isDevEnv  bool
	isTestEnv bool

	yellow       = color.New(color.FgYellow).SprintFunc()
	red          = color.New(color.FgRed).SprintFunc()
	warningLabel = yellow("Warning:")
)

// rootCmd represents the base command when called without any subcommands.
// Initialized as a package var, before any init func runs, so the other
// command files can AddCommand to it from their own init.
var rootCmd = createRootCmd()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = fmt.Sprintf("v%s", version.Version)
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "agenda",
		Short: `agenda is a contact book for your terminal.

Keep a validated list of the people you know in a local (optionally
encrypted) sqlite file, move it around as CSV or vCard, serve it over a
local HTTP API, and let agenda nudge you to actually talk to people :)`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.agenda.yaml)")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")
	cmd.PersistentFlags().BoolVarP(&isTestEnv, "test", "", false, "run in test mode")

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error

	appConfig, err = config.Load(cfgFile, isDevEnv)
	cobra.CheckErr(err)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

// openBook opens the configured database and returns the service plus a
// close function for when the command is done with it.
func openBook() (*book.Book, func(), error) {
	logg := logger.NewFileLogger(appConfig.Logging.ErrorFile)

	st, err := store.New(store.Config{
		Dir:        appConfig.Database.Dir,
		Name:       appConfig.Database.Name,
		PassPhrase: appConfig.Database.PassPhrase,
	}, logg)
	if err != nil {
		return nil, nil, err
	}

	closeBook := func() {
		if err := st.Close(); err != nil {
			fmt.Printf("%s %v\n", warningLabel, err)
		}
	}

	return book.New(st, logg), closeBook, nil
}

// userFacingError passes input problems through untouched and hides
// storage internals behind a generic message; the gateway has already
// logged the cause to the error file.
func userFacingError(err error) error {
	var validationErr *contact.ValidationError
	if errors.As(err, &validationErr) || errors.Is(err, book.ErrMissingID) {
		return err
	}

	return formattedError("something went wrong, check the error log")
}

// parseIDArg turns a positional argument into a stored contact id.
func parseIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, formattedError("'%v' is not a valid contact id", arg)
	}

	return id, nil
}

func formattedError(format string, a ...interface{}) error {
	return fmt.Errorf(red(format), a...)
}
