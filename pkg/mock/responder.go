package mock

import (
	"encoding/json"
	"net/http"
	"time"
)

// Responder is a static mocked response.
type Responder struct {
	// Status is the response status code. Zero means 200.
	Status int
	// Headers are set on every response.
	Headers map[string]string
	// Body is written verbatim.
	Body []byte
	// Delay is waited before responding, unless the request is cancelled first.
	Delay time.Duration
}

// ServeHTTP implements http.Handler.
func (r *Responder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.Delay > 0 {
		timer := time.NewTimer(r.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-req.Context().Done():
			return
		}
	}

	for name, value := range r.Headers {
		w.Header().Set(name, value)
	}
	if w.Header().Get("Content-Type") == "" && len(r.Body) > 0 {
		if json.Valid(r.Body) {
			w.Header().Set("Content-Type", "application/json")
		} else {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if req.Method != http.MethodHead {
		_, _ = w.Write(r.Body)
	}
}
