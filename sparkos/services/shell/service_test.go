package shell

import (
	"strings"
	"testing"
	"time"

	"unios/sparkos/console"
	"unios/sparkos/kernel"
	"unios/sparkos/proto"
)

type inputTask struct {
	to   kernel.Capability
	data string
}

func (t inputTask) Run(ctx *kernel.Context) {
	ctx.SendToCapResult(t.to, uint16(proto.MsgTermInput), []byte(t.data), kernel.Capability{})
}

type collectTask struct {
	from kernel.Capability
	out  chan kernel.Message
}

func (t collectTask) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.from)
	if !ok {
		return
	}
	for msg := range ch {
		t.out <- msg
	}
}

func TestServicePublishesFrames(t *testing.T) {
	k := kernel.New()
	in := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	term := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	frame := kernel.NewSharedBuffer(console.Cells)

	svc, err := NewService(in.Restrict(kernel.RightRecv), term.Restrict(kernel.RightSend), logEP.Restrict(kernel.RightSend), frame, console.AlignLeft)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	frames := make(chan kernel.Message, 16)
	k.AddTask(collectTask{from: term.Restrict(kernel.RightRecv), out: frames})
	k.AddTask(svc)
	k.AddTask(inputTask{to: in.Restrict(kernel.RightSend), data: "echo hi\n"})

	var cells [console.Cells]byte
	deadline := time.After(time.Second)
	for {
		select {
		case msg := <-frames:
			if proto.Kind(msg.Kind) != proto.MsgTermFrame {
				t.Fatalf("term got kind %v, want %v", proto.Kind(msg.Kind), proto.MsgTermFrame)
			}
			seq, _, _, ok := proto.DecodeFramePayload(msg.Payload())
			if !ok {
				t.Fatalf("short frame payload %x", msg.Payload())
			}
			got, n := frame.Read(cells[:])
			if n != console.Cells || got < seq {
				t.Fatalf("frame read seq=%d n=%d, want seq>=%d n=%d", got, n, seq, console.Cells)
			}
			// Banner, hint and a blank line come before the prompt row.
			row := func(r int) string {
				return strings.TrimRight(string(cells[r*console.Width:(r+1)*console.Width]), " ")
			}
			if row(3) == "> echo hi" && row(4) == "hi" {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for the echo frame; last frame:\n%s", cells[:])
		}
	}
}

func TestNewServiceRejectsSmallFrame(t *testing.T) {
	if _, err := NewService(kernel.Capability{}, kernel.Capability{}, kernel.Capability{}, kernel.NewSharedBuffer(10), console.AlignLeft); err == nil {
		t.Fatal("NewService with a 10 byte frame succeeded, want error")
	}
}
