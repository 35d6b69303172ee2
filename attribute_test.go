package ikescan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAttributeTV(t *testing.T) {
	got := appendAttributeTV(nil, attrEncryptionAlgorithm, 5)
	assert.Equal(t, []byte{0x80, 0x01, 0x00, 0x05}, got)
}

func TestAppendAttributeTLV(t *testing.T) {
	got := appendAttributeTLV(nil, attrLifeDuration, []byte{0x00, 0x00, 0x70, 0x80})
	assert.Equal(t, []byte{0x00, 0x0c, 0x00, 0x04, 0x00, 0x00, 0x70, 0x80}, got)
}

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		want     attribute
		wantNext int
		wantOK   bool
	}{
		{
			"tv form",
			[]byte{0x80, 0x01, 0x00, 0x05},
			attribute{class: 0x8001, tv: true, value: 5},
			4,
			true,
		},
		{
			"tlv form",
			[]byte{0x00, 0x0c, 0x00, 0x04, 0x00, 0x00, 0x70, 0x80},
			attribute{class: 0x000c, data: []byte{0x00, 0x00, 0x70, 0x80}},
			8,
			true,
		},
		{
			"tlv truncated value",
			[]byte{0x00, 0x0c, 0x00, 0x04, 0x00, 0x00},
			attribute{},
			0,
			false,
		},
		{
			"truncated header",
			[]byte{0x80, 0x01, 0x00},
			attribute{},
			0,
			false,
		},
		{
			"empty",
			nil,
			attribute{},
			0,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, next, ok := parseAttribute(tt.data, 0)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

// The top bit of the type field is the only discriminator between the two
// forms, and it must survive an encode/decode round.
func TestAttributeRoundTrip(t *testing.T) {
	buf := appendAttributeTV(nil, attrGroupDescription, 2)
	buf = appendAttributeTLV(buf, attrGSSIdentity, []byte("host/gateway"))
	buf = appendAttributeTV(buf, attrKeyLength, 128)

	attr, off, ok := parseAttribute(buf, 0)
	require.True(t, ok)
	assert.True(t, attr.tv)
	assert.Equal(t, attrGroupDescription, attr.class)
	assert.Equal(t, uint16(2), attr.value)

	attr, off, ok = parseAttribute(buf, off)
	require.True(t, ok)
	assert.False(t, attr.tv)
	assert.Equal(t, attrGSSIdentity, attr.class)
	assert.Equal(t, []byte("host/gateway"), attr.data)

	attr, off, ok = parseAttribute(buf, off)
	require.True(t, ok)
	assert.Equal(t, attrKeyLength, attr.class)
	assert.Equal(t, uint16(128), attr.value)
	assert.Equal(t, len(buf), off)
}
