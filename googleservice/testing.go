package googleservice

import "github.com/agendadev/agenda/contact"

// GCalendarAPIStub satisfies GCalendarAPIInterface with canned responses,
// for tests that shouldn't talk to google.
type GCalendarAPIStub struct {
	CreatedEventsID     []string
	CreatedEventID      string
	CreatedEventsError  error
	CreatedEventError   error
	ClearAllEventsError error
}

func (gcalAPI GCalendarAPIStub) CreateEvents(
	contacts []contact.Contact,
	slotStartTime,
	slotEndTime,
	eventRecurrence string) ([]string, error) {

	return gcalAPI.CreatedEventsID, gcalAPI.CreatedEventsError
}

func (gcalAPI GCalendarAPIStub) CreateEvent(title, startTime, endTime, recurrence string) (string, error) {
	return gcalAPI.CreatedEventID, gcalAPI.CreatedEventError
}

func (gcalAPI GCalendarAPIStub) ClearAllEvents(eventIDs []string) error {
	return gcalAPI.ClearAllEventsError
}
