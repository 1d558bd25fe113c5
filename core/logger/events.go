package logger

// LogEntry is the envelope for a single audit event. Exactly one of the
// event fields is populated, named by EventType.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	EventType       string `json:"event_type"`

	MessageSet    *MessageSet    `json:"message_set,omitempty"`
	MessageAcked  *MessageAcked  `json:"message_acked,omitempty"`
	MessageRead   *MessageRead   `json:"message_read,omitempty"`
	RequestDenied *RequestDenied `json:"request_denied,omitempty"`
	RateLimited   *RateLimited   `json:"rate_limited,omitempty"`
	SerialError   *SerialError   `json:"serial_error,omitempty"`
}

// Event is implemented by every payload that can live in a LogEntry.
type Event interface {
	// attach stores the payload on the entry and names its type.
	attach(le *LogEntry) string
}

// MessageSet records a new message being accepted for display.
type MessageSet struct {
	Message    string `json:"message"`
	RemoteAddr string `json:"remote_addr,omitempty"`
}

func (e *MessageSet) attach(le *LogEntry) string {
	le.MessageSet = e
	return "message_set"
}

// MessageAcked records the key switch promoting a message to acknowledged.
type MessageAcked struct {
	Message string `json:"message"`
}

func (e *MessageAcked) attach(le *LogEntry) string {
	le.MessageAcked = e
	return "message_acked"
}

// MessageRead records the last acknowledged message being fetched.
type MessageRead struct {
	Message    string `json:"message"`
	RemoteAddr string `json:"remote_addr,omitempty"`
}

func (e *MessageRead) attach(le *LogEntry) string {
	le.MessageRead = e
	return "message_read"
}

// RequestDenied records a request from outside the allowed prefixes.
type RequestDenied struct {
	RemoteAddr string `json:"remote_addr"`
	Path       string `json:"path,omitempty"`
}

func (e *RequestDenied) attach(le *LogEntry) string {
	le.RequestDenied = e
	return "request_denied"
}

// RateLimited records a POST rejected by the message token bucket.
type RateLimited struct {
	RemoteAddr string `json:"remote_addr"`
}

func (e *RateLimited) attach(le *LogEntry) string {
	le.RateLimited = e
	return "rate_limited"
}

// SerialError records a failed exchange with the board.
type SerialError struct {
	Context      string `json:"context"`
	ErrorMessage string `json:"error_message"`
}

func (e *SerialError) attach(le *LogEntry) string {
	le.SerialError = e
	return "serial_error"
}
