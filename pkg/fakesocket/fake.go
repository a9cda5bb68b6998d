// Package fakesocket provides a fake net.PacketConn which captures written
// datagrams, for exercising the transport without a real socket.
package fakesocket

import (
	"errors"
	"net"
	"time"
)

// FakeAddr is a fake net.Addr
var FakeAddr = &net.UDPAddr{
	IP:   net.IPv4(127, 0, 0, 1),
	Port: 8125,
}

var ErrClosedConnection = errors.New("connection is closed")
var ErrAlreadyClosedConnection = errors.New("connection is already closed")

// FakePacketConn is a fake net.PacketConn recording every datagram written
// to it.  Datagrams are delivered on Sent, which tests receive from.
type FakePacketConn struct {
	Sent   chan []byte
	closed chan int
}

// NewFakePacketConn creates a FakePacketConn with room for capacity
// in-flight datagrams.
func NewFakePacketConn(capacity int) *FakePacketConn {
	return &FakePacketConn{
		Sent:   make(chan []byte, capacity),
		closed: make(chan int),
	}
}

func (fpc *FakePacketConn) isClosed() bool {
	select {
	case <-fpc.closed:
		return true
	default:
		return false
	}
}

// ReadFrom blocks until the connection is closed; the transport never reads.
func (fpc *FakePacketConn) ReadFrom(b []byte) (int, net.Addr, error) {
	<-fpc.closed
	return 0, nil, ErrClosedConnection
}

// WriteTo captures a copy of b as one sent datagram.
func (fpc *FakePacketConn) WriteTo(b []byte, addr net.Addr) (int, error) {
	if fpc.isClosed() {
		return 0, ErrClosedConnection
	}
	datagram := make([]byte, len(b))
	copy(datagram, b)
	fpc.Sent <- datagram
	return len(b), nil
}

// Close marks the connection closed.
func (fpc *FakePacketConn) Close() error {
	if fpc.isClosed() {
		return ErrAlreadyClosedConnection
	}
	// Potential race, but it's a test fixture anyway
	close(fpc.closed)
	return nil
}

// LocalAddr dummy impl.
func (fpc *FakePacketConn) LocalAddr() net.Addr { return FakeAddr }

// SetDeadline dummy impl.
func (fpc *FakePacketConn) SetDeadline(t time.Time) error { return nil }

// SetReadDeadline dummy impl.
func (fpc *FakePacketConn) SetReadDeadline(t time.Time) error { return nil }

// SetWriteDeadline dummy impl.
func (fpc *FakePacketConn) SetWriteDeadline(t time.Time) error { return nil }
