package logger

import (
	"encoding/json"
	"sort"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	MessageSet    MessageSetReport    `json:"message_set_report"`
	MessageAcked  MessageAckedReport  `json:"message_acked_report"`
	RequestDenied RequestDeniedReport `json:"request_denied_report"`
	RateLimited   RateLimitedReport   `json:"rate_limited_report"`
	SerialError   *PathCounter        `json:"serial_error_report,omitempty"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch {
	case le.MessageSet != nil:
		r.MessageSet.update(le.MessageSet)
	case le.MessageAcked != nil:
		r.MessageAcked.update(le.MessageAcked)
	case le.RequestDenied != nil:
		r.RequestDenied.update(le.RequestDenied)
	case le.RateLimited != nil:
		r.RateLimited.update(le.RateLimited)
	case le.SerialError != nil:
		if r.SerialError == nil {
			r.SerialError = NewPathCounter("context", "error")
		}
		r.SerialError.Increment(le.SerialError.Context, le.SerialError.ErrorMessage)
	case le.MessageRead != nil:
		// Reads are frequent and uninteresting, count only.
	default:
		r.InvalidEntries.Increment(le.EventType)
	}
}

type MessageSetReport struct {
	Count int `json:"count"`
	// Messages and how often each was posted.
	Messages StrCounter `json:"messages"`
	// Posting sources and how often each posted.
	Sources StrCounter `json:"sources"`
}

func (r *MessageSetReport) update(e *MessageSet) {
	r.Count++
	r.Messages.Increment(e.Message)
	r.Sources.Increment(e.RemoteAddr)
}

type MessageAckedReport struct {
	Count    int        `json:"count"`
	Messages StrCounter `json:"messages"`
}

func (r *MessageAckedReport) update(e *MessageAcked) {
	r.Count++
	r.Messages.Increment(e.Message)
}

type RequestDeniedReport struct {
	Count   int        `json:"count"`
	Sources StrCounter `json:"sources"`
	Paths   StrCounter `json:"paths"`
}

func (r *RequestDeniedReport) update(e *RequestDenied) {
	r.Count++
	r.Sources.Increment(e.RemoteAddr)
	r.Paths.Increment(e.Path)
}

type RateLimitedReport struct {
	Count   int        `json:"count"`
	Sources StrCounter `json:"sources"`
}

func (r *RateLimitedReport) update(e *RateLimited) {
	r.Count++
	r.Sources.Increment(e.RemoteAddr)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the tally for the given key.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
