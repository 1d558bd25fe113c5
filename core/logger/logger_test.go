package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJsonLinesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewJsonLinesLogRecorder(&buf)

	assert.Nil(t, log.Record(&MessageSet{Message: "hello", RemoteAddr: "127.0.0.1:9999"}))
	assert.Nil(t, log.Record(&MessageAcked{Message: "hello"}))
	assert.Nil(t, log.Record(&RequestDenied{RemoteAddr: "10.0.0.8:1234", Path: "/"}))

	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))

	var got []*LogEntry
	assert.Nil(t, ReadJSONLinesLog(&buf, func(le *LogEntry) {
		got = append(got, le)
	}))

	if assert.Len(t, got, 3) {
		assert.Equal(t, "message_set", got[0].EventType)
		assert.NotNil(t, got[0].MessageSet)
		assert.Equal(t, "hello", got[0].MessageSet.Message)
		assert.NotZero(t, got[0].TimestampMicros)

		assert.Equal(t, "message_acked", got[1].EventType)
		assert.Equal(t, "request_denied", got[2].EventType)
	}
}

func TestReadJSONLinesLog_badInput(t *testing.T) {
	err := ReadJSONLinesLog(strings.NewReader("{not json}\n"), func(le *LogEntry) {})
	assert.NotNil(t, err)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	log := NewJsonLinesLogRecorder(&buf)

	for _, ev := range []Event{
		&MessageSet{Message: "build green", RemoteAddr: "127.0.0.1:50000"},
		&MessageSet{Message: "build green", RemoteAddr: "127.0.0.1:50002"},
		&MessageSet{Message: "disk full", RemoteAddr: "127.0.0.2:50004"},
		&MessageAcked{Message: "build green"},
		&MessageRead{Message: "build green", RemoteAddr: "127.0.0.1:50006"},
		&RequestDenied{RemoteAddr: "192.0.2.7:4242", Path: "/"},
		&RateLimited{RemoteAddr: "127.0.0.1:50008"},
		&SerialError{Context: "lcd_print", ErrorMessage: "timeout"},
	} {
		assert.Nil(t, log.Record(ev))
	}

	var report Report
	assert.Nil(t, ReadJSONLinesLog(&buf, report.Update))

	assert.Equal(t, 8, report.LogEntries)
	assert.Equal(t, 3, report.MessageSet.Count)
	assert.Equal(t, 2, report.MessageSet.Messages.Count("build green"))
	assert.Equal(t, 1, report.MessageAcked.Count)
	assert.Equal(t, 1, report.RequestDenied.Count)
	assert.Equal(t, 1, report.RequestDenied.Sources.Count("192.0.2.7:4242"))
	assert.Equal(t, 1, report.RateLimited.Count)
	assert.NotNil(t, report.SerialError)
}
