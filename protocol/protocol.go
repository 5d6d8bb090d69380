// Package protocol frames the telemetry the robot streams to the host.
//
// A frame is
//
//	[len][0x10|seq][payload...][crc hi][crc lo][0x7E]
//
// where len counts every byte of the frame, seq is a 4-bit counter and the
// CRC covers everything before it. Payload fields are VLQ encoded.
package protocol

// Frame layout
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	MessageSeqMask = 0x0F
)
