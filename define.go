package ikescan

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

var _lg = logrus.New()

func SetLogger(lg *logrus.Logger) {
	_lg = lg
}

// Payload types from RFC 2408 3.1.
const (
	NextPayloadNone         byte = 0
	NextPayloadSA           byte = 1
	NextPayloadProposal     byte = 2
	NextPayloadTransform    byte = 3
	NextPayloadKeyExchange  byte = 4
	NextPayloadID           byte = 5
	NextPayloadCert         byte = 6
	NextPayloadCertRequest  byte = 7
	NextPayloadHash         byte = 8
	NextPayloadSignature    byte = 9
	NextPayloadNonce        byte = 10
	NextPayloadNotification byte = 11
	NextPayloadDelete       byte = 12
	NextPayloadVendorID     byte = 13
)

// Exchange types from RFC 2408 3.1. Phase-1 uses identity protection
// (main mode) or aggressive mode.
const (
	ExchangeNone       byte = 0
	ExchangeBase       byte = 1
	ExchangeMain       byte = 2
	ExchangeAggressive byte = 4
)

const (
	isakmpVersion   byte = 0x10 // major 1, minor 0
	doiIPsec             = 1
	sitIdentityOnly      = 1
	protoISAKMP     byte = 1
	transformKeyIKE byte = 1
)

// Fixed sizes of the encoded structures. Every payload starts with the
// 4-byte generic header; the sizes below include it.
//
//	| Next Payload  |   RESERVED    |         Payload Length        |
//	| <-  8 bits -> | <-  8 bits -> | <-          16 bits        -> |
const (
	headerLen        = 28
	genericHeaderLen = 4
	saHeaderLen      = genericHeaderLen + 8 // DOI(4) + situation(4)
	proposalLen      = genericHeaderLen + 4 // proposal#, protocol-id, SPI size, #transforms
	transformLen     = genericHeaderLen + 4 // transform#, transform-id, reserved(2)
	idHeaderLen      = genericHeaderLen + 4 // id-type, DOI-specific(3)
	notifyHeaderLen  = genericHeaderLen + 8 // DOI(4), protocol-id, SPI size, notify type(2)
)

// Encryption algorithm values for the phase-1 SA, RFC 2409 appendix A.
const (
	CipherDES      uint16 = 1
	CipherIDEA     uint16 = 2
	CipherBlowfish uint16 = 3
	CipherRC5      uint16 = 4
	Cipher3DES     uint16 = 5
	CipherCAST     uint16 = 6
	CipherAES      uint16 = 7
)

// Hash algorithm values, RFC 2409 appendix A.
const (
	HashMD5   uint16 = 1
	HashSHA1  uint16 = 2
	HashTiger uint16 = 3
)

// Authentication method values, RFC 2409 appendix A, plus the common
// extensions seen in the wild.
const (
	AuthPSK           uint16 = 1
	AuthDSSSignature  uint16 = 2
	AuthRSASignature  uint16 = 3
	AuthRSAEncryption uint16 = 4
	AuthRevisedRSAEnc uint16 = 5
	AuthHybridRSA     uint16 = 64221
	AuthXAUTHInitPSK  uint16 = 65001
)

// Diffie-Hellman group descriptions, RFC 2409 appendix A.
const (
	GroupMODP768  uint16 = 1
	GroupMODP1024 uint16 = 2
	GroupEC2N155  uint16 = 3
	GroupEC2N185  uint16 = 4
	GroupMODP1536 uint16 = 5
)

// Identification types from RFC 2407 4.6.2.1.
const (
	IDTypeIPv4Addr   byte = 1
	IDTypeFQDN       byte = 2
	IDTypeUserFQDN   byte = 3
	IDTypeIPv4Subnet byte = 4
	IDTypeIPv6Addr   byte = 5
	IDTypeKeyID      byte = 11
)

func serializeBigEndianUint16(i uint16) []byte {
	bytes := make([]byte, 2)
	binary.BigEndian.PutUint16(bytes, i)
	return bytes
}

func serializeBigEndianUint32(i uint32) []byte {
	bytes := make([]byte, 4)
	binary.BigEndian.PutUint32(bytes, i)
	return bytes
}

func putBigEndianUint16(x []byte, off int, i uint16) {
	binary.BigEndian.PutUint16(x[off:off+2], i)
}

func putBigEndianUint32(x []byte, off int, i uint32) {
	binary.BigEndian.PutUint32(x[off:off+4], i)
}

// parseBigEndianUint16 reads a big-endian uint16 at off. The second return
// value is false when fewer than two bytes remain.
func parseBigEndianUint16(x []byte, off int) (uint16, bool) {
	if off < 0 || off+2 > len(x) {
		return 0, false
	}
	return binary.BigEndian.Uint16(x[off : off+2]), true
}

// parseBigEndianUint32 reads a big-endian uint32 at off. The second return
// value is false when fewer than four bytes remain.
func parseBigEndianUint32(x []byte, off int) (uint32, bool) {
	if off < 0 || off+4 > len(x) {
		return 0, false
	}
	return binary.BigEndian.Uint32(x[off : off+4]), true
}
