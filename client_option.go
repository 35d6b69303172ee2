package ikescan

import (
	"crypto/rand"
	"io"
	"time"
)

const (
	DefaultSourcePort = 500
	DefaultDestPort   = 500
	DefaultRetries    = 3
	DefaultInterval   = 500 * time.Millisecond
	DefaultBackoff    = 1.5
	DefaultNonceLen   = 20
)

// DefaultTransformSpecs returns the stock proposal: the eight transforms
// built from 3DES and DES, SHA1 and MD5, MODP-1024 and MODP-768, all with
// pre-shared key authentication. Broad enough that most endpoints accept
// at least one, which is what makes the fingerprint handshake come back.
func DefaultTransformSpecs() []TransformSpec {
	var specs []TransformSpec
	for _, cipher := range []uint16{Cipher3DES, CipherDES} {
		for _, hash := range []uint16{HashSHA1, HashMD5} {
			for _, group := range []uint16{GroupMODP1024, GroupMODP768} {
				specs = append(specs, TransformSpec{
					Cipher: cipher,
					Hash:   hash,
					Auth:   AuthPSK,
					Group:  group,
				})
			}
		}
	}
	return specs
}

func NewScanOption() *ScanOption {
	return &ScanOption{
		exchange:   ExchangeMain,
		transforms: DefaultTransformSpecs(),
		idType:     IDTypeUserFQDN,
		rnd:        rand.Reader,
		sourcePort: DefaultSourcePort,
		destPort:   DefaultDestPort,
		retries:    DefaultRetries,
		interval:   DefaultInterval,
		backoff:    DefaultBackoff,
		nonceLen:   DefaultNonceLen,
	}
}

// ScanOption carries everything a Scanner needs to build probe datagrams
// and pace their retransmission.
type ScanOption struct {
	exchange   byte
	transforms []TransformSpec
	vendorIDs  [][]byte
	idType     byte
	identity   []byte
	patterns   []VendorPattern

	rnd io.Reader // byte source for cookies, KE and nonce bodies

	sourcePort int
	destPort   int
	retries    int
	interval   time.Duration
	backoff    float64
	nonceLen   int
}

func (o *ScanOption) SetExchange(xchg byte) *ScanOption {
	o.exchange = xchg
	return o
}

func (o *ScanOption) SetTransforms(specs []TransformSpec) *ScanOption {
	if len(specs) > 0 {
		o.transforms = specs
	}
	return o
}

func (o *ScanOption) AddVendorID(vid []byte) *ScanOption {
	o.vendorIDs = append(o.vendorIDs, vid)
	return o
}

func (o *ScanOption) SetIdentity(idType byte, id []byte) *ScanOption {
	o.idType = idType
	o.identity = id
	return o
}

func (o *ScanOption) SetPatterns(patterns []VendorPattern) *ScanOption {
	o.patterns = patterns
	return o
}

// SetRandom replaces the byte source used for cookies and the KE and
// nonce bodies. Probes do not need cryptographic quality; a seeded
// source makes scans replayable.
func (o *ScanOption) SetRandom(rnd io.Reader) *ScanOption {
	if rnd != nil {
		o.rnd = rnd
	}
	return o
}

func (o *ScanOption) SetSourcePort(port int) *ScanOption {
	if port >= 0 {
		o.sourcePort = port
	}
	return o
}

func (o *ScanOption) SetDestPort(port int) *ScanOption {
	if port > 0 {
		o.destPort = port
	}
	return o
}

func (o *ScanOption) SetRetries(retries int) *ScanOption {
	if retries > 0 {
		o.retries = retries
	}
	return o
}

func (o *ScanOption) SetInterval(interval time.Duration) *ScanOption {
	if interval > 0 {
		o.interval = interval
	}
	return o
}

func (o *ScanOption) SetBackoff(backoff float64) *ScanOption {
	if backoff >= 1 {
		o.backoff = backoff
	}
	return o
}

func (o *ScanOption) SetNonceLen(n int) *ScanOption {
	if n > 0 {
		o.nonceLen = n
	}
	return o
}

// BuildProbe assembles the probe datagram for one target using the given
// initiator cookie. Main mode sends SA (+ VIDs); aggressive mode adds the
// Key Exchange, Nonce and Identification payloads the exchange requires.
func (o *ScanOption) BuildProbe(cookie [8]byte) ([]byte, error) {
	ts := NewTransformSet()
	for _, spec := range o.transforms {
		ts.Add(spec)
	}
	sa, err := NewSA(ts)
	if err != nil {
		return nil, err
	}
	payloads := []Payload{sa}

	if o.exchange == ExchangeAggressive {
		ke, err := NewKeyExchange(KeyExchangeLen(o.transforms[0].Group), o.rnd)
		if err != nil {
			return nil, err
		}
		nonce, err := NewNonce(o.nonceLen, o.rnd)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, ke, nonce, NewIdentification(o.idType, o.identity))
	}

	if len(o.vendorIDs) > 0 {
		vs := NewVendorIDSet()
		for _, vid := range o.vendorIDs {
			vs.Add(vid)
		}
		vids, err := vs.Finalize()
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, vids)
	}

	return Assemble(o.exchange, cookie, payloads), nil
}
