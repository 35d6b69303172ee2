package ikescan

import (
	"io"
)

/*
Every ISAKMP payload starts with the same generic header (RFC 2408 3.2):

	| <-   8 bits   -> | <-  8 bits  -> | <-      16 bits       -> |
	|   Next Payload   |    RESERVED    |      Payload Length      |

The builders below each return one owned buffer with the generic header
and the payload length filled in. The next-payload field is written from
the hint the caller passes, but assembly is the only place where the chain
value is authoritative; see Assemble.
*/

// makeHeader constructs the 28-byte ISAKMP header:
//
//	| Initiator Cookie (8 bytes)                                    |
//	| Responder Cookie (8 bytes)                                    |
//	| Next Payload | Version | Exchange Type | Flags                |
//	| Message ID (4 bytes)                                          |
//	| Length (4 bytes)                                              |
//
// The responder cookie, flags and message id are zero for a phase-1
// initiation.
func makeHeader(xchg byte, next byte, cookie [8]byte, length uint32) []byte {
	payload := make([]byte, headerLen)
	copy(payload[0:8], cookie[:])
	payload[16] = next
	payload[17] = isakmpVersion
	payload[18] = xchg
	payload[19] = 0 // flags
	putBigEndianUint32(payload, 20, 0)
	putBigEndianUint32(payload, 24, length)
	return payload
}

// makeSAHeader constructs the fixed part of a Security Association payload
// with DOI = IPsec and situation = identity only. length is the length of
// the whole SA payload including the nested proposal and transforms.
func makeSAHeader(next byte, length int) []byte {
	payload := make([]byte, saHeaderLen)
	payload[0] = next
	putBigEndianUint16(payload, 2, uint16(length))
	putBigEndianUint32(payload, 4, doiIPsec)
	putBigEndianUint32(payload, 8, sitIdentityOnly)
	return payload
}

// makeProposal constructs a proposal payload header. ISAKMP SAs carry a
// single proposal, so the proposal number is fixed at 1 and the next
// field is NONE. The SPI size is zero for phase-1.
func makeProposal(length int, notrans byte) []byte {
	payload := make([]byte, proposalLen)
	payload[0] = NextPayloadNone
	putBigEndianUint16(payload, 2, uint16(length))
	payload[4] = 1 // proposal #1
	payload[5] = protoISAKMP
	payload[6] = 0 // no SPI
	payload[7] = notrans
	return payload
}

// TransformSpec describes one phase-1 transform: the four mandatory
// attributes plus the optional ones that are emitted when non-zero.
type TransformSpec struct {
	Cipher    uint16
	KeyLength uint16 // key length attribute, 0 for fixed-length ciphers
	Hash      uint16
	Auth      uint16
	Group     uint16

	LifetimeSeconds uint32 // SA life in seconds, 0 for none
	LifeKilobytes   uint32 // SA life in kilobytes, 0 for none

	GSS         bool // emit a GSS identity attribute
	GSSIdentity []byte
}

// makeTransform constructs a single transform payload. The mandatory
// attributes are emitted in the fixed order encryption, hash,
// authentication, group; the optional attributes follow in the order key
// length, lifetime, lifesize, GSS identity.
func makeTransform(next byte, number byte, spec TransformSpec) []byte {
	payload := make([]byte, transformLen)
	payload[0] = next
	payload[4] = number
	payload[5] = transformKeyIKE

	payload = appendAttributeTV(payload, attrEncryptionAlgorithm, spec.Cipher)
	payload = appendAttributeTV(payload, attrHashAlgorithm, spec.Hash)
	payload = appendAttributeTV(payload, attrAuthMethod, spec.Auth)
	payload = appendAttributeTV(payload, attrGroupDescription, spec.Group)

	if spec.KeyLength != 0 {
		payload = appendAttributeTV(payload, attrKeyLength, spec.KeyLength)
	}
	if spec.LifetimeSeconds != 0 {
		payload = appendAttributeTV(payload, attrLifeType, lifeTypeSeconds)
		payload = appendAttributeTLV(payload, attrLifeDuration, serializeBigEndianUint32(spec.LifetimeSeconds))
	}
	if spec.LifeKilobytes != 0 {
		payload = appendAttributeTV(payload, attrLifeType, lifeTypeKilobytes)
		payload = appendAttributeTLV(payload, attrLifeDuration, serializeBigEndianUint32(spec.LifeKilobytes))
	}
	if spec.GSS {
		payload = appendAttributeTLV(payload, attrGSSIdentity, spec.GSSIdentity)
	}

	putBigEndianUint16(payload, 2, uint16(len(payload)))
	return payload
}

// makeKeyExchange constructs a Key Exchange payload whose body is drawn
// from rnd. A real IKE implementation would send its Diffie-Hellman public
// value here; random bytes are enough to elicit a handshake response, and
// key agreement is out of scope for a prober.
func makeKeyExchange(next byte, kxLen int, rnd io.Reader) ([]byte, error) {
	if kxLen%4 != 0 {
		return nil, errKeyExchangeLength{kxLen}
	}
	payload := make([]byte, genericHeaderLen+kxLen)
	payload[0] = next
	putBigEndianUint16(payload, 2, uint16(len(payload)))
	if _, err := io.ReadFull(rnd, payload[genericHeaderLen:]); err != nil {
		return nil, err
	}
	return payload, nil
}

// makeNonce constructs a Nonce payload of nonceLen body bytes drawn from
// rnd. Nonce quality does not matter for probing, so any byte source will
// do.
func makeNonce(next byte, nonceLen int, rnd io.Reader) ([]byte, error) {
	payload := make([]byte, genericHeaderLen+nonceLen)
	payload[0] = next
	putBigEndianUint16(payload, 2, uint16(len(payload)))
	if _, err := io.ReadFull(rnd, payload[genericHeaderLen:]); err != nil {
		return nil, err
	}
	return payload, nil
}

// makeIdentification constructs an Identification payload. The
// DOI-specific fields carry protocol UDP and port 500, matching what IKE
// daemons expect from an initiator on the standard port.
func makeIdentification(next byte, idType byte, id []byte) []byte {
	payload := make([]byte, idHeaderLen+len(id))
	payload[0] = next
	putBigEndianUint16(payload, 2, uint16(len(payload)))
	payload[4] = idType
	payload[5] = 17 // protocol: UDP
	putBigEndianUint16(payload, 6, 500)
	copy(payload[idHeaderLen:], id)
	return payload
}

// makeVendorID constructs a Vendor ID payload around the opaque vendor
// bytes, commonly a 16-byte MD5 fingerprint.
func makeVendorID(next byte, vid []byte) []byte {
	payload := make([]byte, genericHeaderLen+len(vid))
	payload[0] = next
	putBigEndianUint16(payload, 2, uint16(len(payload)))
	copy(payload[genericHeaderLen:], vid)
	return payload
}

// makeNotification constructs a Notification payload for the given notify
// type. The responder uses it to answer probes; the scanner itself never
// sends one.
func makeNotification(next byte, notifyType uint16, data []byte) []byte {
	payload := make([]byte, notifyHeaderLen+len(data))
	payload[0] = next
	putBigEndianUint16(payload, 2, uint16(len(payload)))
	putBigEndianUint32(payload, 4, doiIPsec)
	payload[8] = protoISAKMP
	payload[9] = 0 // no SPI
	putBigEndianUint16(payload, 10, notifyType)
	copy(payload[notifyHeaderLen:], data)
	return payload
}

// NewSA wraps a finalized transform set into a complete SA payload with
// its single proposal.
func NewSA(ts *TransformSet) (Payload, error) {
	trans, err := ts.Finalize()
	if err != nil {
		return Payload{}, err
	}
	length := saHeaderLen + proposalLen + len(trans)
	payload := makeSAHeader(NextPayloadNone, length)
	prop := makeProposal(proposalLen+len(trans), byte(ts.Count()))
	payload = append(payload, prop...)
	payload = append(payload, trans...)
	return Payload{Kind: NextPayloadSA, Data: payload}, nil
}

// NewKeyExchange builds a Key Exchange payload with kxLen body bytes from
// rnd. kxLen must be a multiple of 4; KeyExchangeLen gives the value
// matching a DH group.
func NewKeyExchange(kxLen int, rnd io.Reader) (Payload, error) {
	data, err := makeKeyExchange(NextPayloadNone, kxLen, rnd)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Kind: NextPayloadKeyExchange, Data: data}, nil
}

// KeyExchangeLen returns the Diffie-Hellman public value length in bytes
// for a MODP group, which is what the peer expects the KE body to be.
func KeyExchangeLen(group uint16) int {
	switch group {
	case GroupMODP768:
		return 96
	case GroupMODP1024:
		return 128
	case GroupMODP1536:
		return 192
	default:
		return 128
	}
}

// NewNonce builds a Nonce payload with nonceLen body bytes from rnd.
func NewNonce(nonceLen int, rnd io.Reader) (Payload, error) {
	data, err := makeNonce(NextPayloadNone, nonceLen, rnd)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Kind: NextPayloadNonce, Data: data}, nil
}

// NewIdentification builds an Identification payload.
func NewIdentification(idType byte, id []byte) Payload {
	return Payload{Kind: NextPayloadID, Data: makeIdentification(NextPayloadNone, idType, id)}
}

// NewNotification builds a Notification payload.
func NewNotification(notifyType uint16, data []byte) Payload {
	return Payload{Kind: NextPayloadNotification, Data: makeNotification(NextPayloadNone, notifyType, data)}
}
