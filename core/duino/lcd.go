package duino

import (
	"context"
	"fmt"
)

// LCD drives a character display wired to the board in 4-bit mode.
type LCD struct {
	conn *Conn
	cols int
	rows int
}

// NewLCD binds the display pins on the firmware side. pins is
// [rs, enable, d4, d5, d6, d7].
func NewLCD(ctx context.Context, conn *Conn, pins []int, cols, rows int) (*LCD, error) {
	if len(pins) != 6 {
		return nil, fmt.Errorf("want 6 LCD pins [rs enable d4 d5 d6 d7], got %d", len(pins))
	}

	request := []byte{CmdLCDConfig}
	for _, pin := range pins {
		request = append(request, byte(pin))
	}
	request = append(request, byte(cols), byte(rows))

	if _, err := conn.exchange(ctx, request, 0); err != nil {
		return nil, fmt.Errorf("couldn't configure LCD: %w", err)
	}

	return &LCD{conn: conn, cols: cols, rows: rows}, nil
}

func (l *LCD) Columns() int { return l.cols }
func (l *LCD) Rows() int    { return l.rows }

// Clear blanks the display and homes the cursor.
func (l *LCD) Clear(ctx context.Context) error {
	_, err := l.conn.exchange(ctx, []byte{CmdLCDClear}, 0)
	return err
}

// PrintAt writes text starting at the given column and row, truncated to the
// display width.
func (l *LCD) PrintAt(ctx context.Context, col, row int, text string) error {
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return fmt.Errorf("position (%d,%d) outside %dx%d display", col, row, l.cols, l.rows)
	}

	if max := l.cols - col; len(text) > max {
		text = text[:max]
	}

	request := []byte{CmdLCDPrint, byte(col), byte(row), byte(len(text))}
	request = append(request, text...)

	_, err := l.conn.exchange(ctx, request, 0)
	return err
}
