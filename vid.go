package ikescan

/*
VendorIDSet accumulates a chain of Vendor ID payloads. Unlike transforms,
VIDs are top-level payloads: each Add links the new VID with
next = VendorID, and Finalize flips the last one to NONE, producing a
pre-linked chain that Assemble treats as a single entry.
*/
type VendorIDSet struct {
	buf     []byte
	lastOff int
	count   int
}

func NewVendorIDSet() *VendorIDSet {
	return &VendorIDSet{}
}

// Add appends one Vendor ID payload carrying the opaque vid bytes.
func (vs *VendorIDSet) Add(vid []byte) *VendorIDSet {
	vs.count++
	payload := makeVendorID(NextPayloadVendorID, vid)
	vs.lastOff = len(vs.buf)
	vs.buf = append(vs.buf, payload...)
	return vs
}

// Count returns the number of Vendor IDs added so far.
func (vs *VendorIDSet) Count() int {
	return vs.count
}

// Finalize terminates the chain and returns it as an assembler entry. At
// least one VID must have been added.
func (vs *VendorIDSet) Finalize() (Payload, error) {
	if vs.count == 0 {
		return Payload{}, errEmptyVendorIDSet{}
	}
	vs.buf[vs.lastOff] = NextPayloadNone
	return Payload{Kind: NextPayloadVendorID, Data: vs.buf, lastOff: vs.lastOff}, nil
}
