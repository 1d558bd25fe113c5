package duino

import (
	"time"

	"go.bug.st/serial"
)

// Port is the transport to the board. It allows swapping the OS serial port
// for a scripted one in tests.
type Port interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Open connects to the RPC firmware over the given serial device.
func Open(device string, baud int) (*Conn, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, err
	}

	// The UNO resets when the port opens, give the firmware time to boot.
	time.Sleep(2 * time.Second)

	return NewConn(port), nil
}
