package logger

import (
	"unios/sparkos/kernel"
	"unios/sparkos/proto"
)

// Log sends one line to the logger service. Lines longer than
// proto.MaxLogLine are cut; a full queue drops the line.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(line), kernel.Capability{})
}
