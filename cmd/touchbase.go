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
	"regexp"
	"strings"

	"github.com/agendadev/agenda/googleservice"
	"github.com/spf13/cobra"
)

const maxContactsToTouchbaseWith = 7

var (
	countArg     int
	frequencyArg int
	searchArg    string
	timeSlotArg  string
	intervals    = []int{
		1, // weekly
		2, // bi-weekly
		4, // monthly
	}
)

func init() {
	rootCmd.AddCommand(createTouchbaseCmd())
}

func createTouchbaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "touchbase",
		Short: "Deletes previous touchbase events and creates new ones for your contacts",
		Long: `Deletes the touchbase google calendar events created by the previous run
and creates new ones(up to a max of 7 contacts), so you get a recurring
nudge to catch up with each person in your book`,
		RunE: runTouchbase,
	}

	cmd.Flags().IntVarP(&countArg, "count", "c", 4, "how many times you want to touchbase with each contact")
	cmd.Flags().StringVarP(&searchArg, "search", "s", "", "only touchbase with contacts matching this term")
	cmd.Flags().IntVarP(&frequencyArg, "freq", "f", 1, "how often you want to touchbase i.e. 0 - weekly, 1 - bi-weekly, or 2 - monthly")
	cmd.Flags().StringVarP(&timeSlotArg, "time-slot", "t", "18:00-18:30", "time slot in the day allocated for touching base")

	return cmd
}

func runTouchbase(cmd *cobra.Command, args []string) error {
	initGCalendarAPI()

	if err := validateTouchbaseFlags(); err != nil {
		return err
	}

	b, closeBook, err := openBook()
	if err != nil {
		return userFacingError(err)
	}
	defer closeBook()

	contacts := b.ListAll()
	if searchArg != "" {
		contacts = b.Search(searchArg)
	}

	if len(contacts) == 0 {
		if searchArg != "" {
			return fmt.Errorf("no contacts match '%s'. Try a different --search term", searchArg)
		}
		return fmt.Errorf("no contacts to touch base with. Try 'agenda add' first")
	}

	// Clear any events previously created by touchbase
	err = googleAPI.ClearAllEvents(appConfig.EventIDs())
	if err != nil {
		cmd.Printf("%s %v\n", warningLabel, err)
	}

	if len(contacts) > maxContactsToTouchbaseWith {
		contacts = contacts[:maxContactsToTouchbaseWith]
		cmd.Printf("%s Touchbase events are created for a Max of %v contacts."+
			"\nEvents will be created for ONLY the first %v contacts."+
			"\nUse --search to pick a different set of contacts.\n",
			warningLabel, maxContactsToTouchbaseWith, len(contacts))
	}

	slotStartTime, slotEndTime := splitTimeSlot(timeSlotArg)

	eventIds, err := googleAPI.CreateEvents(
		contacts,
		slotStartTime,
		slotEndTime,
		eventRecurrence(appConfig.Settings.TouchbaseRecurrence),
	)
	if err != nil {
		return err
	}

	// Save created eventIds to config file, so the next run can clear them
	if err := appConfig.SaveEventIDs(eventIds); err != nil {
		cmd.Printf("%s unable to save event ids: %v\n", warningLabel, err)
	}

	cmd.Printf("\nAll touchbase appointments have been created!\n")

	return nil
}

func validateTouchbaseFlags() error {
	if countArg <= 0 {
		return fmt.Errorf("invalid argument \"%v\", --count must be > 0", countArg)
	}

	if frequencyArg < 0 || frequencyArg >= len(intervals) {
		return fmt.Errorf("invalid argument \"%v\", --freq should be 0, 1, or 2", frequencyArg)
	}

	match, _ := regexp.MatchString(`\d{1,2}:\d\d-\d{1,2}:\d\d`, timeSlotArg)
	if !match {
		return fmt.Errorf("invalid argument \"%v\", valid --time-slot format required e.g. 18:00-18:30", timeSlotArg)
	}

	return nil
}

func eventRecurrence(recurrence string) string {
	return recurrence +
		fmt.Sprintf("COUNT=%d;INTERVAL=%d;", countArg, intervals[frequencyArg])
}

func splitTimeSlot(timeSlotStr string) (string, string) {
	list := strings.Split(timeSlotStr, "-")
	return list[0], list[1]
}

func initGCalendarAPI() {
	googleCredentials := appConfig.Google.ApplicationCredentials
	ownerEmail := appConfig.Owner.Email

	if googleCredentials == "" {
		cobra.CheckErr(formattedError(
			"must set the env var 'GOOGLE_APPLICATION_CREDENTIALS' or 'google.applicationCredentials' in %s", appConfig.FileUsed()))
	}

	if ownerEmail == "" {
		cobra.CheckErr(formattedError("must set 'owner.email' in %s", appConfig.FileUsed()))
	}

	// No need to use real googleAPI in tests
	if isTestEnv {
		return
	}

	var err error
	googleAPI, err = googleservice.NewGoogleCalendarAPI(googleCredentials, ownerEmail, appConfig.Settings.TimeZone)
	cobra.CheckErr(err)
}
