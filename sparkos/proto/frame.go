package proto

import "encoding/binary"

// FramePayload encodes a MsgTermFrame notify payload.
//
// The frame cells themselves live in a shared buffer; the message only says
// which version to draw and where the cursor is.
//
// Layout (little-endian):
//   - u32: shared buffer sequence
//   - u8:  cursor row
//   - u8:  cursor column
func FramePayload(seq uint32, row, col uint8) []byte {
	buf := make([]byte, 6)
	binary.LittleEndian.PutUint32(buf[0:4], seq)
	buf[4] = row
	buf[5] = col
	return buf
}

// DecodeFramePayload decodes a FramePayload.
func DecodeFramePayload(payload []byte) (seq uint32, row, col uint8, ok bool) {
	if len(payload) < 6 {
		return 0, 0, 0, false
	}
	return binary.LittleEndian.Uint32(payload[0:4]), payload[4], payload[5], true
}
