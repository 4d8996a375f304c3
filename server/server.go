// Package server exposes the contact book over a local HTTP API and
// keeps the scheduled database backups running while it is up.
package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/agendadev/agenda/book"
	"github.com/agendadev/agenda/config"
	"github.com/agendadev/agenda/logger"
	"github.com/agendadev/agenda/store"
	"github.com/agendadev/agenda/utils"
	"github.com/gorilla/mux"
)

var (
	logg = logger.NewLogger()

	// appBook is assigned once on Start; handler tests swap in their own.
	appBook *book.Book
)

// Start brings up the backup scheduler and the HTTP API, then blocks
// until SIGINT/SIGTERM, backing up & closing the database on the way out.
func Start(cfg *config.Config) {
	dbFilePath := filepath.Join(cfg.Database.Dir, cfg.Database.Name)

	backupScheduler, err := NewBackupScheduler(cfg, dbFilePath)
	fatalOnError(err)

	// On a fresh host, pull the newest remote backup before the gateway
	// creates an empty database in its place.
	if cfg.BackupSyncEnabled() && !utils.FileExist(dbFilePath) {
		fatalOnError(backupScheduler.RestoreLatest())
	}

	st, err := store.New(store.Config{
		Dir:        cfg.Database.Dir,
		Name:       cfg.Database.Name,
		PassPhrase: cfg.Database.PassPhrase,
	}, logger.NewFileLogger(cfg.Logging.ErrorFile))
	fatalOnError(err)

	appBook = book.New(st, logg)
	backupScheduler.UseStore(st)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%v", cfg.Listener.Port),
		Handler: newRouter(),
	}

	backupScheduler.Start()
	go serve(server)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	cleanup(backupScheduler, server, st, cfg.BackupSyncEnabled())
}

func newRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.HandleFunc("/contacts", listContacts).Methods("GET")
	router.HandleFunc("/contacts", createContact).Methods("POST")
	router.HandleFunc("/contacts/{id}", getContact).Methods("GET")
	router.HandleFunc("/contacts/{id}", updateContact).Methods("PUT")
	router.HandleFunc("/contacts/{id}", deleteContact).Methods("DELETE")
	router.HandleFunc("/export/csv", exportCSV).Methods("GET")
	router.HandleFunc("/export/vcard", exportVCard).Methods("GET")

	router.Use(loggingMiddleware)
	router.Use(jsonContentTypeMiddleware)

	return router
}
