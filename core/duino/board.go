// Package duino talks to an Arduino running the companion RPC firmware over
// a serial port. It exposes just enough of the board for the display daemon:
// digital pins and a character LCD.
package duino

import "context"

// Board drives the digital pins of the Arduino.
type Board struct {
	conn *Conn
}

func NewBoard(conn *Conn) *Board {
	return &Board{conn: conn}
}

// Ping verifies the firmware is up and speaking the protocol.
func (b *Board) Ping(ctx context.Context) error {
	_, err := b.conn.exchange(ctx, []byte{CmdPing}, 0)
	return err
}

func (b *Board) PinMode(ctx context.Context, pin int, mode byte) error {
	_, err := b.conn.exchange(ctx, []byte{CmdPinMode, byte(pin), mode}, 0)
	return err
}

func (b *Board) DigitalWrite(ctx context.Context, pin int, level byte) error {
	_, err := b.conn.exchange(ctx, []byte{CmdDigitalWrite, byte(pin), level}, 0)
	return err
}

// DigitalRead samples a digital pin, reporting whether it reads high.
func (b *Board) DigitalRead(ctx context.Context, pin int) (bool, error) {
	value, err := b.conn.exchange(ctx, []byte{CmdDigitalRead, byte(pin)}, 1)
	if err != nil {
		return false, err
	}
	return value[0] != Low, nil
}
