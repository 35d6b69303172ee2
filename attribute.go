package ikescan

/*
Transform attributes are encoded in one of two forms, discriminated by the
top bit of the 16-bit attribute type field (RFC 2408 3.3):

	| AF |     Attribute Type       |    AF=1  Attribute Value      |
	|    |                          |    AF=0  Attribute Length     |
	| <-         16 bits         -> | <-         16 bits         -> |
	|              AF=0  Attribute Value (variable length)          |

With the top bit set (TV form) the attribute occupies a fixed four bytes;
with the top bit clear (TLV form) the second word is the length of the
value bytes that follow.
*/
const attrFormatTV uint16 = 0x8000

// Attribute classes used in phase-1 transforms, RFC 2409 appendix A.
const (
	attrEncryptionAlgorithm uint16 = 0x8001
	attrHashAlgorithm       uint16 = 0x8002
	attrAuthMethod          uint16 = 0x8003
	attrGroupDescription    uint16 = 0x8004
	attrLifeType            uint16 = 0x800b
	attrLifeDuration        uint16 = 0x000c
	attrKeyLength           uint16 = 0x800e
	attrGSSIdentity         uint16 = 0x4000
)

const (
	lifeTypeSeconds   uint16 = 1
	lifeTypeKilobytes uint16 = 2
)

func appendAttributeTV(x []byte, class uint16, value uint16) []byte {
	x = append(x, serializeBigEndianUint16(class)...)
	x = append(x, serializeBigEndianUint16(value)...)
	return x
}

func appendAttributeTLV(x []byte, class uint16, value []byte) []byte {
	x = append(x, serializeBigEndianUint16(class)...)
	x = append(x, serializeBigEndianUint16(uint16(len(value)))...)
	x = append(x, value...)
	return x
}

type attribute struct {
	class uint16
	tv    bool
	value uint16 // TV form
	data  []byte // TLV form
}

// parseAttribute decodes one attribute at off and returns it together with
// the offset of the next attribute. The final return value is false when
// the remaining bytes cannot hold the declared attribute.
func parseAttribute(x []byte, off int) (attribute, int, bool) {
	class, ok := parseBigEndianUint16(x, off)
	if !ok {
		return attribute{}, 0, false
	}
	second, ok := parseBigEndianUint16(x, off+2)
	if !ok {
		return attribute{}, 0, false
	}
	if class&attrFormatTV != 0 {
		return attribute{class: class, tv: true, value: second}, off + 4, true
	}
	end := off + 4 + int(second)
	if end > len(x) {
		return attribute{}, 0, false
	}
	return attribute{class: class, data: x[off+4 : end]}, end, true
}
