package ikescan

/*
A phase-1 datagram is the 28-byte ISAKMP header followed by a chain of
payloads, each naming the type of its successor:

	| ISAKMP Header       next: type of payload 1 |
	| Payload 1           next: type of payload 2 |
	| ...                                         |
	| Payload n           next: NONE              |

Builders only hint their next-payload byte; Assemble is the single
authority for the chain and rewrites every link from the actual payload
order, so a reordered or extended payload list stays consistent without
touching the builders.
*/

// Payload is one assembler entry: the payload kind as linked from the
// predecessor, and the encoded bytes. Data normally holds a single
// payload; a finalized VendorIDSet produces a pre-linked chain, with
// lastOff marking the generic header of its final element so the outgoing
// link can be patched there.
type Payload struct {
	Kind byte
	Data []byte

	lastOff int
}

// Assemble concatenates the header and payloads into one datagram, fixing
// up each payload's next-payload field from its successor and writing the
// total length into the header.
func Assemble(xchg byte, cookie [8]byte, payloads []Payload) []byte {
	length := headerLen
	for _, p := range payloads {
		length += len(p.Data)
	}

	next := NextPayloadNone
	if len(payloads) > 0 {
		next = payloads[0].Kind
	}
	msg := makeHeader(xchg, next, cookie, uint32(length))

	for i, p := range payloads {
		next = NextPayloadNone
		if i+1 < len(payloads) {
			next = payloads[i+1].Kind
		}
		p.Data[p.lastOff] = next
		msg = append(msg, p.Data...)
	}
	return msg
}
