package proto

import "strings"

// MaxLogLine is the longest log line carried in one MsgLogLine message.
const MaxLogLine = 128

// LogLinePayload encodes a MsgLogLine payload: the line without trailing
// newlines, cut at MaxLogLine bytes. Delivery is best-effort.
func LogLinePayload(line string) []byte {
	line = strings.TrimRight(line, "\r\n")
	if len(line) > MaxLogLine {
		line = line[:MaxLogLine]
	}
	return []byte(line)
}
