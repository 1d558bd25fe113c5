package duino

// Wire protocol spoken by the RPC firmware, see firmware/firmware.ino.
//
// Requests are an opcode, fixed-size arguments, an optional length-prefixed
// payload and a stop byte. Replies start with an ack or nak byte; reads
// carry one value byte after the ack.

const (
	StopByte byte = 0xff

	RespAck byte = 0x06
	RespNak byte = 0x15
)

const (
	CmdPing byte = 0xa0
)

const (
	CmdPinMode byte = 0x10 | iota
	CmdDigitalWrite
	CmdDigitalRead
)

const (
	CmdLCDConfig byte = 0x20 | iota
	CmdLCDClear
	CmdLCDPrint
)

// Arduino pin levels and modes.
const (
	Low  byte = 0
	High byte = 1

	Input  byte = 0
	Output byte = 1
)
