package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fatih/color"
)

var (
	green        = color.New(color.FgGreen).SprintFunc()
	redStatus    = color.New(color.FgRed).SprintFunc()
	yellowNotice = color.New(color.FgYellow).SprintFunc()
)

// ResponseWriterWithStatus remembers the status a handler wrote, so the
// logging middleware can report it after the fact.
type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         200,
		}

		defer func() {
			responseStatus := green(responseWriter.Status)
			if responseWriter.Status >= 400 {
				responseStatus = redStatus(responseWriter.Status)
			}

			logg.Infof("%v %v %v %v",
				r.Method,
				r.RequestURI,
				responseStatus,
				yellowNotice(fmt.Sprintf("[%v]", time.Since(start))))
		}()

		next.ServeHTTP(responseWriter, r)
	})
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Export handlers replace this with their download type.
		w.Header().Add("Content-Type", "application/json")

		next.ServeHTTP(w, r)
	})
}
