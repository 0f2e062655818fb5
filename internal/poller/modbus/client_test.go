// internal/poller/modbus/client_test.go
package modbus

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

// fakeMeter is a one-connection Modbus TCP holding-register server.
type fakeMeter struct {
	ln        net.Listener
	regs      map[uint16]uint16
	exception uint8 // non-zero: answer every request with this exception
	short     bool  // answer with one register less than requested
	gotUnit   chan uint8
}

func startFakeMeter(t *testing.T, m *fakeMeter) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	m.ln = ln
	m.gotUnit = make(chan uint8, 16)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		m.serve(conn)
	}()

	return ln.Addr().String()
}

func (m *fakeMeter) serve(conn net.Conn) {
	for {
		// MBAP(7) + FC(1) + Address(2) + Quantity(2)
		var req [12]byte
		if _, err := io.ReadFull(conn, req[:]); err != nil {
			return
		}

		tid := binary.BigEndian.Uint16(req[0:2])
		unit := req[6]
		fc := req[7]
		addr := binary.BigEndian.Uint16(req[8:10])
		qty := binary.BigEndian.Uint16(req[10:12])

		select {
		case m.gotUnit <- unit:
		default:
		}

		var pdu []byte
		switch {
		case m.exception != 0:
			pdu = []byte{fc | 0x80, m.exception}
		default:
			n := qty
			if m.short {
				n--
			}
			pdu = make([]byte, 2+2*int(n))
			pdu[0] = fc
			pdu[1] = byte(2 * n)
			for i := uint16(0); i < n; i++ {
				binary.BigEndian.PutUint16(pdu[2+2*i:], m.regs[addr+i])
			}
		}

		resp := make([]byte, 7+len(pdu))
		binary.BigEndian.PutUint16(resp[0:2], tid)
		binary.BigEndian.PutUint16(resp[2:4], 0)
		binary.BigEndian.PutUint16(resp[4:6], uint16(1+len(pdu)))
		resp[6] = unit
		copy(resp[7:], pdu)

		if _, err := conn.Write(resp); err != nil {
			return
		}
	}
}

func dial(t *testing.T, endpoint string) *Client {
	t.Helper()

	c, err := Dial(context.Background(), Config{
		Endpoint: endpoint,
		UnitID:   1,
		Timeout:  2 * time.Second,
	})
	if err != nil {
		t.Fatalf("Dial() err=%v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestReadHoldingRegisters_Success(t *testing.T) {
	m := &fakeMeter{regs: map[uint16]uint16{0x0383: 0x447A, 0x0384: 0x0000}}
	c := dial(t, startFakeMeter(t, m))

	regs, err := c.ReadHoldingRegisters(0x0383, 2)
	if err != nil {
		t.Fatalf("read err=%v", err)
	}
	if len(regs) != 2 || regs[0] != 0x447A || regs[1] != 0x0000 {
		t.Fatalf("unexpected registers: %#v", regs)
	}

	if unit := <-m.gotUnit; unit != 1 {
		t.Fatalf("unit id: got=%d want=1", unit)
	}
}

func TestReadHoldingRegisters_Exception(t *testing.T) {
	m := &fakeMeter{exception: 2}
	c := dial(t, startFakeMeter(t, m))

	_, err := c.ReadHoldingRegisters(0x0383, 2)
	var ee *ExceptionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *ExceptionError, got %T (%v)", err, err)
	}
	if ee.Code() != 2 || ee.Function != 3 {
		t.Fatalf("unexpected exception: %+v", ee)
	}
}

func TestReadHoldingRegisters_ShortPayload(t *testing.T) {
	m := &fakeMeter{regs: map[uint16]uint16{}, short: true}
	c := dial(t, startFakeMeter(t, m))

	if _, err := c.ReadHoldingRegisters(0x03ED, 2); err == nil {
		t.Fatalf("expected malformed response error, got nil")
	}
}

func TestDial_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	endpoint := ln.Addr().String()
	_ = ln.Close()

	if _, err := Dial(context.Background(), Config{Endpoint: endpoint, UnitID: 1, Timeout: time.Second}); err == nil {
		t.Fatalf("expected connect error, got nil")
	}
}

func TestDial_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Dial(ctx, Config{Endpoint: "127.0.0.1:502"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestUnpackRegisters(t *testing.T) {
	got := unpackRegisters([]byte{0x44, 0x7A, 0x00, 0x01})
	if len(got) != 2 || got[0] != 0x447A || got[1] != 0x0001 {
		t.Fatalf("unexpected: %#v", got)
	}
}
