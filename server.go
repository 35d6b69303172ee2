package ikescan

import (
	"context"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
)

// ReplyBuilder produces the canned answer for one inbound probe, given
// the probe's initiator cookie and exchange type. Returning nil drops the
// probe.
type ReplyBuilder func(cookie [8]byte, xchg byte) []byte

// NotifyReply answers every probe with a Notification of the given type,
// the way many gateways reject an unacceptable proposal.
func NotifyReply(notifyType uint16, data []byte) ReplyBuilder {
	return func(cookie [8]byte, xchg byte) []byte {
		return Assemble(xchg, cookie, []Payload{NewNotification(notifyType, data)})
	}
}

// SAReply answers every probe by accepting with a minimal SA carrying the
// given transform.
func SAReply(spec TransformSpec) ReplyBuilder {
	return func(cookie [8]byte, xchg byte) []byte {
		sa, err := NewSA(NewTransformSet().Add(spec))
		if err != nil {
			return nil
		}
		return Assemble(xchg, cookie, []Payload{sa})
	}
}

func NewResponder(address string, reply ReplyBuilder, lg *logrus.Logger) *Responder {
	if lg == nil {
		lg = _lg
	}
	return &Responder{
		address: address,
		reply:   reply,
		lg:      lg,
	}
}

// Responder is a canned IKE endpoint: it answers every well-formed
// phase-1 datagram with whatever its ReplyBuilder produces, echoing the
// initiator cookie so scanners can correlate. It exists for integration
// tests and local bring-up, not for real negotiation.
type Responder struct {
	address string
	reply   ReplyBuilder
	conn    *net.UDPConn

	lg *logrus.Logger
}

// Serve listens and answers until ctx is cancelled.
func (r *Responder) Serve(ctx context.Context) error {
	if err := r.listen(); err != nil {
		return err
	}
	defer r.conn.Close()

	go func() {
		<-ctx.Done()
		r.conn.Close()
	}()

	buf := make([]byte, 65535)
	for {
		n, addr, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return fmt.Errorf("read probe: %w", err)
			}
		}
		r.serve(buf[:n], addr)
	}
}

// Addr returns the bound address once Serve has started listening.
func (r *Responder) Addr() *net.UDPAddr {
	if r.conn == nil {
		return nil
	}
	return r.conn.LocalAddr().(*net.UDPAddr)
}

// Listen binds the socket without serving; Serve may then be started in
// its own goroutine. Useful when the caller needs the bound port first.
func (r *Responder) Listen() error {
	return r.listen()
}

func (r *Responder) listen() error {
	if r.conn != nil {
		return nil
	}
	addr, err := net.ResolveUDPAddr("udp", r.address)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", r.address, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("listen udp: %w", err)
	}
	r.lg.Debugf("responder listening on %s", conn.LocalAddr())
	r.conn = conn
	return nil
}

func (r *Responder) serve(probe []byte, addr *net.UDPAddr) {
	if len(probe) < headerLen || probe[17] != isakmpVersion {
		r.lg.Debugf("ignoring non-ISAKMP datagram from %s", addr)
		return
	}
	var cookie [8]byte
	copy(cookie[:], probe[:8])

	answer := r.reply(cookie, probe[18])
	if answer == nil {
		return
	}
	if _, err := r.conn.WriteToUDP(answer, addr); err != nil {
		r.lg.Errorf("write reply to %s: %v", addr, err)
	}
}
