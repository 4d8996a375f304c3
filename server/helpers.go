package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agendadev/agenda/contact"
	"github.com/agendadev/agenda/store"
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad ResponsePayload, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(payLoad.Errors)
	} else if statusCode >= http.StatusBadRequest {
		logg.Info(payLoad.Errors)
	}

	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(payLoad)
}

// contactID parses the {id} route variable into a stored contact id.
func contactID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("'%v' is not a valid contact id", raw)
	}

	return id, nil
}

// statusForServiceError maps malformed input to 400 and everything else,
// i.e. storage trouble, to 500.
func statusForServiceError(err error) int {
	var validationErr *contact.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// RegisterValidators adds the record shape rules to validate, under the
// names the contactParams tags use.
func RegisterValidators(validate *validator.Validate) error {
	err := validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return contact.DigitsOnly.Acceptable(fl.Field().String())
	})
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return contact.EmailShape.Acceptable(fl.Field().String())
	})
	if err != nil {
		return err
	}

	return nil
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Agenda server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(backupScheduler *BackupScheduler, server *http.Server, st *store.Store, backupDb bool) {
	// Stop scheduled backups, then take one last snapshot before the
	// process goes away.
	backupScheduler.Stop()

	if backupDb {
		if err := backupScheduler.runBackup(); err != nil {
			logg.Errorf("final backup failed: %v", err)
		}
	}

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Agenda server shutdown failed:%+s", err)
	}

	if err := st.Close(); err != nil {
		logg.Errorf("closing the store failed: %v", err)
	}

	logg.Infof("Agenda server stopped properly")
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
