package ikescan

import (
	"encoding/hex"
	"fmt"
)

// DecodeResult is the human-readable summary of one inbound datagram:
// the exchange type from the header and one line per decoded payload, in
// wire order.
type DecodeResult struct {
	Exchange byte
	Messages []string
}

/*
Decode walks the payload chain of an inbound ISAKMP datagram and summarizes
what it finds. The walk is strictly left-to-right and bounded: it ends at a
next-payload of NONE, when fewer bytes remain than a generic header, or
when a declared payload length is out of range. Malformed input truncates
the walk; whatever decoded up to that point is still returned, because a
partial summary is exactly what a scanner wants to see. The input is never
modified and never read past its end.

SA, Vendor ID and Notification payloads are summarized; Vendor ID bodies
are matched against patterns for fingerprinting. Any other payload kind is
skipped by its declared length.
*/
func Decode(pkt []byte, patterns []VendorPattern) *DecodeResult {
	result := &DecodeResult{Exchange: ExchangeNone}

	rest, next, xchg, ok := processHeader(pkt)
	if !ok {
		return result
	}
	result.Exchange = xchg

	for next != NextPayloadNone && len(rest) >= genericHeaderLen {
		switch next {
		case NextPayloadSA:
			result.Messages = append(result.Messages, processSA(rest, xchg))
		case NextPayloadVendorID:
			result.Messages = append(result.Messages, processVendorID(rest, patterns))
		case NextPayloadNotification:
			result.Messages = append(result.Messages, processNotify(rest))
		default:
			_lg.Debugf("skipping unhandled payload type %d", next)
		}
		rest, next = skipPayload(rest)
	}
	return result
}

// processHeader validates the fixed ISAKMP header and returns the
// remaining bytes, the first payload type and the exchange type.
func processHeader(pkt []byte) ([]byte, byte, byte, bool) {
	if len(pkt) < headerLen {
		return nil, NextPayloadNone, ExchangeNone, false
	}
	length, _ := parseBigEndianUint32(pkt, 24)
	if length < headerLen || pkt[16] == NextPayloadNone {
		return nil, NextPayloadNone, ExchangeNone, false
	}
	return pkt[headerLen:], pkt[16], pkt[18], true
}

// skipPayload advances past the payload at the start of rest. It returns
// no remainder when the declared length is out of range or the payload is
// the last of the chain.
func skipPayload(rest []byte) ([]byte, byte) {
	length, ok := parseBigEndianUint16(rest, 2)
	if !ok ||
		int(length) >= len(rest) ||
		int(length) < genericHeaderLen ||
		rest[0] == NextPayloadNone {
		return nil, NextPayloadNone
	}
	return rest[length:], rest[0]
}

func processSA(rest []byte, xchg byte) string {
	length, ok := parseBigEndianUint16(rest, 2)
	if !ok || len(rest) < saHeaderLen+proposalLen || int(length) < saHeaderLen+proposalLen {
		return "IKE Handshake returned (packet too short to decode)"
	}

	var msg string
	switch xchg {
	case ExchangeMain:
		msg = "Main Mode Handshake returned"
	case ExchangeAggressive:
		msg = "Aggressive Mode Handshake returned"
	default:
		msg = fmt.Sprintf("UNKNOWN Mode Handshake returned (%d)", xchg)
	}

	if notrans := rest[saHeaderLen+7]; notrans != 1 {
		msg = fmt.Sprintf("%s (%d transforms)", msg, notrans)
	}
	return msg
}

func processVendorID(rest []byte, patterns []VendorPattern) string {
	length, ok := parseBigEndianUint16(rest, 2)
	if !ok || int(length) < genericHeaderLen {
		return "VID (packet too short to decode)"
	}

	body := rest[genericHeaderLen:]
	if n := int(length) - genericHeaderLen; n < len(body) {
		body = body[:n]
	}

	msg := fmt.Sprintf("VID=%s", hex.EncodeToString(body))
	if name, ok := matchVendorID(body, patterns); ok {
		msg = fmt.Sprintf("%s (%s)", msg, name)
	}
	return msg
}

func processNotify(rest []byte) string {
	length, ok := parseBigEndianUint16(rest, 2)
	if !ok || len(rest) < notifyHeaderLen || int(length) < notifyHeaderLen {
		return "Notify message (packet too short to decode)"
	}

	msgType, _ := parseBigEndianUint16(rest, 10)
	body := rest[notifyHeaderLen:]
	if n := int(length) - notifyHeaderLen; n < len(body) {
		body = body[:n]
	}

	switch {
	case int(msgType) < len(notificationMsg):
		return fmt.Sprintf("Notify message %d (%s)", msgType, notificationMsg[msgType])
	case msgType == checkpointNotifyType:
		return fmt.Sprintf("Notify message %d [Checkpoint Firewall-1 4.x or NG Base] (%s)",
			msgType, printable(body))
	default:
		return fmt.Sprintf("Notify message %d (UNKNOWN MESSAGE TYPE)", msgType)
	}
}

// printable renders b as a string with every non-printable byte replaced
// by '.'.
func printable(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		out[i] = c
	}
	return string(out)
}
