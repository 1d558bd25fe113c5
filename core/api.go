package core

import (
	"encoding/json"
	"log"
	"net/http"
	"net/netip"

	"josephlewis.net/lsd/core/logger"
)

// messageBody is the wire format for both directions of the API.
type messageBody struct {
	Message string `json:"message"`
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	remote, err := netip.ParseAddrPort(r.RemoteAddr)
	if err != nil || !s.filter.Allowed(remote.Addr()) {
		s.record(&logger.RequestDenied{RemoteAddr: r.RemoteAddr, Path: r.URL.Path})
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getRoot(w, r)
	case http.MethodPost:
		s.postRoot(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

// getRoot returns the last acknowledged message.
func (s *Server) getRoot(w http.ResponseWriter, r *http.Request) {
	message := s.display.LastAcked()
	s.record(&logger.MessageRead{Message: message, RemoteAddr: r.RemoteAddr})

	writeJSON(w, http.StatusOK, messageBody{Message: message})
}

// postRoot pushes a new message onto the display.
func (s *Server) postRoot(w http.ResponseWriter, r *http.Request) {
	if s.bucket.TakeAvailable(1) == 0 {
		s.record(&logger.RateLimited{RemoteAddr: r.RemoteAddr})
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		return
	}

	var body messageBody
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		http.Error(w, "body must be a JSON object with a message field", http.StatusBadRequest)
		return
	}

	if err := s.display.Show(r.Context(), body.Message); err != nil {
		s.record(&logger.SerialError{Context: "show_message", ErrorMessage: err.Error()})
		http.Error(w, "couldn't update the display", http.StatusInternalServerError)
		return
	}

	s.record(&logger.MessageSet{Message: body.Message, RemoteAddr: r.RemoteAddr})
	writeJSON(w, http.StatusOK, messageBody{Message: body.Message})
}

func (s *Server) record(event logger.Event) {
	if err := s.events.Record(event); err != nil {
		log.Printf("couldn't record event: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("couldn't write response: %v", err)
	}
}
