package duino

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const defaultExchangeTimeout = 2 * time.Second

var (
	// ErrNak means the firmware rejected the request.
	ErrNak = errors.New("board rejected request")
	// ErrTimeout means the firmware didn't answer in time.
	ErrTimeout = errors.New("board read timed out")
)

// Conn serializes request/response exchanges with the firmware. The firmware
// is single threaded, only one request may be in flight at a time.
type Conn struct {
	mu   sync.Mutex
	port Port
}

func NewConn(port Port) *Conn {
	return &Conn{port: port}
}

func (c *Conn) Close() error {
	return c.port.Close()
}

// exchange sends one framed request and reads back the status byte plus
// valueLen extra bytes.
func (c *Conn) exchange(ctx context.Context, request []byte, valueLen int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := defaultExchangeTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := c.port.SetReadTimeout(timeout); err != nil {
		return nil, err
	}

	if _, err := c.port.Write(append(request, StopByte)); err != nil {
		return nil, fmt.Errorf("couldn't write to board: %w", err)
	}

	status, err := c.readFull(1)
	if err != nil {
		return nil, err
	}
	switch status[0] {
	case RespAck:
		// fall through to the value bytes
	case RespNak:
		return nil, ErrNak
	default:
		return nil, fmt.Errorf("unexpected status byte 0x%02x", status[0])
	}

	if valueLen == 0 {
		return nil, nil
	}
	return c.readFull(valueLen)
}

func (c *Conn) readFull(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		read, err := c.port.Read(buf[:n-len(out)])
		if err != nil {
			return nil, fmt.Errorf("couldn't read from board: %w", err)
		}
		if read == 0 {
			// Zero-length reads signal a timeout.
			return nil, ErrTimeout
		}
		out = append(out, buf[:read]...)
	}
	return out, nil
}
