package ikescan

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

// HostResult is the outcome of probing one target.
type HostResult struct {
	Host      string
	Addr      *net.UDPAddr
	Responded bool
	Exchange  byte
	Messages  []string
	RTT       time.Duration
}

func NewScanner(opt *ScanOption, lg *logrus.Logger) *Scanner {
	if lg == nil {
		lg = _lg
	}
	return &Scanner{
		opt: opt,
		lg:  lg,
	}
}

// Scanner probes IKE endpoints over UDP. Each target gets its own probe
// datagram with a unique initiator cookie; responses are correlated back
// to targets by that cookie, so late answers after a retransmission still
// land on the right host.
type Scanner struct {
	opt *ScanOption
	lg  *logrus.Logger
}

type probe struct {
	host   string
	addr   *net.UDPAddr
	packet []byte
	sentAt time.Time
	result *HostResult
}

type datagram struct {
	data []byte
	addr *net.UDPAddr
}

// Scan probes every host and blocks until each one answered, the retry
// schedule is exhausted, or ctx is cancelled. One result is returned per
// host, in input order; hosts that never answered come back with
// Responded = false.
func (s *Scanner) Scan(ctx context.Context, hosts []string) ([]HostResult, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: s.opt.sourcePort})
	if err != nil {
		return nil, fmt.Errorf("listen udp: %w", err)
	}
	defer conn.Close()

	results := make([]HostResult, len(hosts))
	pending := make(map[[8]byte]*probe, len(hosts))
	for i, host := range hosts {
		results[i] = HostResult{Host: host}
		addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, fmt.Sprintf("%d", s.opt.destPort)))
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", host, err)
		}
		results[i].Addr = addr

		var cookie [8]byte
		if _, err := io.ReadFull(s.opt.rnd, cookie[:]); err != nil {
			return nil, fmt.Errorf("draw cookie: %w", err)
		}
		packet, err := s.opt.BuildProbe(cookie)
		if err != nil {
			return nil, fmt.Errorf("build probe for %s: %w", host, err)
		}
		pending[cookie] = &probe{host: host, addr: addr, packet: packet, result: &results[i]}
	}

	recvChan := make(chan datagram)
	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	go s.readingFromSocket(readCtx, conn, recvChan)

	interval := s.opt.interval
	for attempt := 0; attempt < s.opt.retries && len(pending) > 0; attempt++ {
		for _, p := range pending {
			s.lg.Debugf("send probe to %s (attempt %d): [% X]", p.addr, attempt+1, p.packet[:headerLen])
			p.sentAt = time.Now()
			if _, err := conn.WriteToUDP(p.packet, p.addr); err != nil {
				s.lg.Errorf("write to %s: %v", p.addr, err)
			}
		}

		timer := time.NewTimer(interval)
	wait:
		for len(pending) > 0 {
			select {
			case <-ctx.Done():
				timer.Stop()
				return results, ctx.Err()
			case <-timer.C:
				break wait
			case dg := <-recvChan:
				s.handleResponse(dg, pending)
			}
		}
		timer.Stop()
		interval = time.Duration(float64(interval) * s.opt.backoff)
	}

	for _, p := range pending {
		s.lg.Infof("%s: no response after %d attempts", p.host, s.opt.retries)
	}
	return results, nil
}

func (s *Scanner) handleResponse(dg datagram, pending map[[8]byte]*probe) {
	if len(dg.data) < headerLen {
		s.lg.Debugf("short datagram from %s (%d bytes)", dg.addr, len(dg.data))
		return
	}
	var cookie [8]byte
	copy(cookie[:], dg.data[:8])

	p, ok := pending[cookie]
	if !ok {
		s.lg.Debugf("datagram from %s with unknown cookie [% X]", dg.addr, cookie)
		return
	}
	delete(pending, cookie)

	decoded := Decode(dg.data, s.opt.patterns)
	p.result.Responded = true
	p.result.Exchange = decoded.Exchange
	p.result.Messages = decoded.Messages
	p.result.RTT = time.Since(p.sentAt)
	s.lg.Debugf("%s answered in %s: %v", p.host, p.result.RTT, p.result.Messages)
}

func (s *Scanner) readingFromSocket(ctx context.Context, conn *net.UDPConn, recvChan chan<- datagram) {
	s.lg.Debug("start goroutine for reading from socket")
	defer s.lg.Debug("stop goroutine for reading from socket")

	buf := make([]byte, 65535)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond)); err != nil {
			return
		}
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				select {
				case <-ctx.Done():
					return
				default:
					continue
				}
			}
			select {
			case <-ctx.Done():
			default:
				s.lg.Errorf("read from socket: %v", err)
			}
			return
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		select {
		case recvChan <- datagram{data: data, addr: addr}:
		case <-ctx.Done():
			return
		}
	}
}
