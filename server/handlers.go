package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/agendadev/agenda/contact"
	"github.com/agendadev/agenda/version"
	"github.com/go-playground/validator"
)

type ResponsePayload struct {
	Errors  []string    `json:"errors,omitempty"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// contactParams is the JSON body of POST /contacts and PUT /contacts/{id}.
// The shape checks mirror the record rules, so a request rejected here
// would have been rejected by the service anyway.
type contactParams struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,digits"`
	Email       string `json:"email" validate:"required,email_shape"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	fatalOnError(RegisterValidators(validate))
}

func healthCheck(rw http.ResponseWriter, r *http.Request) {
	json.NewEncoder(rw).Encode(ResponsePayload{
		Success: true,
		Data:    map[string]string{"version": version.Version},
	})
}

func listContacts(rw http.ResponseWriter, r *http.Request) {
	var contacts []contact.Contact

	if term := r.URL.Query().Get("q"); term != "" {
		contacts = appBook.Search(term)
	} else {
		contacts = appBook.ListAll()
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: contacts})
}

func createContact(rw http.ResponseWriter, r *http.Request) {
	data := contactParams{}
	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(&data); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	if errs := validate.Struct(data); errs != nil {
		writeResponse(rw, ResponsePayload{Errors: strings.Split(errs.Error(), "\n")}, http.StatusBadRequest)
		return
	}

	err := appBook.Add(contact.New(data.FirstName, data.LastName, data.PhoneNumber, data.Email))
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, statusForServiceError(err))
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true})
}

func getContact(rw http.ResponseWriter, r *http.Request) {
	id, err := contactID(r)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	c, err := appBook.Get(id)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}
	if c == nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"contact not found"}}, http.StatusNotFound)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: c})
}

func updateContact(rw http.ResponseWriter, r *http.Request) {
	id, err := contactID(r)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	data := contactParams{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	if errs := validate.Struct(data); errs != nil {
		writeResponse(rw, ResponsePayload{Errors: strings.Split(errs.Error(), "\n")}, http.StatusBadRequest)
		return
	}

	// Full-record update: every field is overwritten. Updating an id
	// that was never stored succeeds without changing anything, same as
	// the service contract.
	c := contact.New(data.FirstName, data.LastName, data.PhoneNumber, data.Email)
	c.ID = id

	if err := appBook.Update(c); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, statusForServiceError(err))
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true})
}

func deleteContact(rw http.ResponseWriter, r *http.Request) {
	id, err := contactID(r)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	if err := appBook.Delete(id); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true})
}

func exportCSV(rw http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := appBook.WriteCSV(&buf); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "text/csv; charset=utf-8")
	rw.Header().Set("Content-Disposition", `attachment; filename="contacts.csv"`)
	rw.Write(buf.Bytes())
}

func exportVCard(rw http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := appBook.WriteVCard(&buf); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "text/vcard; charset=utf-8")
	rw.Header().Set("Content-Disposition", `attachment; filename="contacts.vcf"`)
	rw.Write(buf.Bytes())
}
