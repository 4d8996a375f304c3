package googleservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/agendadev/agenda/contact"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type GCalendarAPIInterface interface {
	// CreateEvents creates google calendar events for the given contacts and returns the eventIDs and error(if any)
	CreateEvents(
		contacts []contact.Contact,
		slotStartTime,
		slotEndTime,
		eventRecurrence string) ([]string, error)

	// CreateEvent creates a google calendar event and returns the event ID
	CreateEvent(title, startTime, endTime, recurrence string) (string, error)

	// ClearAllEvents deletes all google calendar events for eventIDs
	ClearAllEvents(eventIDs []string) error
}

type GCalendarAPI struct {
	service    *calendar.Service
	ownerEmail string
	timeZone   string
}

const calendarId = "primary"

// NewGoogleCalendarAPI builds a calendar client from the oauth app
// credentials in credentialsFilePath. Events go on the primary calendar
// with ownerEmail as attendee, in timeZone.
func NewGoogleCalendarAPI(credentialsFilePath, ownerEmail, timeZone string) (*GCalendarAPI, error) {
	ctx := context.Background()
	b, err := ioutil.ReadFile(credentialsFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read client secret file")
	}

	// If modifying these scopes, delete your previously saved *-token.json.
	config, err := google.ConfigFromJSON(b, calendar.CalendarEventsScope)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse client secret file to config")
	}

	client, err := getClient(config)
	if err != nil {
		return nil, err
	}

	calendarService, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, errors.Wrap(err, "unable to retrieve calendar client")
	}

	return &GCalendarAPI{service: calendarService, ownerEmail: ownerEmail, timeZone: timeZone}, nil
}

func (gcalAPI GCalendarAPI) CreateEvents(
	contacts []contact.Contact,
	slotStartTime,
	slotEndTime,
	eventRecurrence string) ([]string, error) {

	startDate := time.Now()
	endDate := startDate.Add(30 * time.Minute)
	startStr, endStr := "", ""
	eventIds := []string{}
	for _, c := range contacts {
		startStr = fmt.Sprintf("%sT%s:00", startDate.Format("2006-01-02"), slotStartTime)
		endStr = fmt.Sprintf("%sT%s:00", endDate.Format("2006-01-02"), slotEndTime)

		eventId, err := gcalAPI.CreateEvent(c.FullName(), startStr, endStr, eventRecurrence)
		if err != nil {
			// Create all events or no event
			delErr := gcalAPI.ClearAllEvents(eventIds)
			if delErr != nil {
				err = fmt.Errorf("%v; %v", err, delErr)
			}
			return nil, fmt.Errorf("unable to create event. %v", err)
		}
		eventIds = append(eventIds, eventId)

		// Move date range to the next day for the next contact
		startDate = startDate.Add(24 * time.Hour)
		endDate = startDate.Add(30 * time.Minute)
	}
	return eventIds, nil
}

func (gcalAPI GCalendarAPI) CreateEvent(title, startTime, endTime, recurrence string) (string, error) {
	event := &calendar.Event{
		Summary:     fmt.Sprintf("☕ Coffee chat with %s", title),
		Location:    "",
		Description: "A quick sync :)",
		Start: &calendar.EventDateTime{
			DateTime: startTime,
			TimeZone: gcalAPI.timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: endTime,
			TimeZone: gcalAPI.timeZone,
		},
		Recurrence: []string{recurrence},
		Reminders: &calendar.EventReminders{
			Overrides: []*calendar.EventReminder{
				{
					Method:  "popup",
					Minutes: 10,
				},
			},
			ForceSendFields: []string{"UseDefault"},
		},
		Attendees: []*calendar.EventAttendee{
			{Email: gcalAPI.ownerEmail},
		},
	}

	event, err := gcalAPI.service.Events.Insert(calendarId, event).Do()
	if err != nil {
		return "", err
	}

	return event.Id, nil
}

func (gcalAPI GCalendarAPI) ClearAllEvents(eventIDs []string) error {
	var err error
	errorMsg := ""

	for _, eventID := range eventIDs {
		err = gcalAPI.service.Events.Delete(calendarId, eventID).Do()
		if err != nil {
			errorMsg += fmt.Sprintf("unable to delete event = %v because %v;", eventID, err)
		}
	}

	if errorMsg != "" {
		err = errors.New(errorMsg)
	}

	return err
}

// Retrieve a token, saves the token, then returns the generated client.
func getClient(config *oauth2.Config) (*http.Client, error) {
	// The file .agenda-token.json stores the user's access and refresh tokens, and is
	// created automatically when the authorization flow completes for the first
	// time.
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Read token from file
	tokFileFilePath := filepath.Join(home, ".agenda-token.json")
	token, err := tokenFromFile(tokFileFilePath)

	// Get updated token by calling TokenSource(auto-renews token if expired) with token from file.
	// Doing this because, we'd like to prompt the user to sign-in to their google account
	// when their original token in file can no longer be renewed.
	if err == nil {
		token, err = config.TokenSource(context.TODO(), token).Token()
	}

	if err != nil || !token.Valid() {
		token, err = getTokenFromWeb(config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokFileFilePath, token); err != nil {
			return nil, err
		}
	}

	return config.Client(context.Background(), token), nil
}

// Request a token from the web, then returns the retrieved token.
func getTokenFromWeb(config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, errors.Wrap(err, "unable to read authorization code")
	}

	tok, err := config.Exchange(context.TODO(), authCode)
	if err != nil {
		return nil, errors.Wrap(err, "unable to retrieve token from web")
	}
	return tok, nil
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	fmt.Printf("Saving credential file to: %s\n", path)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "unable to cache oauth token")
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
