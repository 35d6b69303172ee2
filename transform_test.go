package ikescan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformSet_numbering(t *testing.T) {
	ts := NewTransformSet()
	for i := 0; i < 3; i++ {
		ts.Add(TransformSpec{Cipher: Cipher3DES, Hash: HashSHA1, Auth: AuthPSK, Group: GroupMODP1024})
	}
	require.Equal(t, 3, ts.Count())

	buf, err := ts.Finalize()
	require.NoError(t, err)
	require.Len(t, buf, 3*24)

	// Transforms are numbered 1..n and only the last one ends the chain.
	for i := 0; i < 3; i++ {
		trans := buf[i*24:]
		wantNext := NextPayloadTransform
		if i == 2 {
			wantNext = NextPayloadNone
		}
		assert.Equal(t, wantNext, trans[0], "transform %d next", i+1)
		assert.Equal(t, byte(i+1), trans[4], "transform %d number", i+1)
		assert.Equal(t, transformKeyIKE, trans[5])
	}
}

func TestTransformSet_empty(t *testing.T) {
	_, err := NewTransformSet().Finalize()
	require.Error(t, err)
	assert.True(t, IsErrEmptyTransformSet(err))
}

func TestVendorIDSet(t *testing.T) {
	vs := NewVendorIDSet()
	vs.Add([]byte{0xaa, 0xaa}).Add([]byte{0xbb})
	require.Equal(t, 2, vs.Count())

	payload, err := vs.Finalize()
	require.NoError(t, err)
	assert.Equal(t, NextPayloadVendorID, payload.Kind)

	// First VID links to the second, the second ends the chain.
	assert.Equal(t, NextPayloadVendorID, payload.Data[0])
	assert.Equal(t, []byte{0x00, 0x06}, payload.Data[2:4])
	second := payload.Data[6:]
	assert.Equal(t, NextPayloadNone, second[0])
	assert.Equal(t, []byte{0x00, 0x05}, second[2:4])
	assert.Equal(t, 6, payload.lastOff)
}

func TestVendorIDSet_empty(t *testing.T) {
	_, err := NewVendorIDSet().Finalize()
	require.Error(t, err)
	assert.True(t, IsErrEmptyVendorIDSet(err))
}

// Two builders must not share state; interleaved builds stay independent.
func TestTransformSet_independent(t *testing.T) {
	a := NewTransformSet()
	b := NewTransformSet()
	a.Add(TransformSpec{Cipher: Cipher3DES, Hash: HashSHA1, Auth: AuthPSK, Group: GroupMODP1024})
	b.Add(TransformSpec{Cipher: CipherDES, Hash: HashMD5, Auth: AuthPSK, Group: GroupMODP768})
	b.Add(TransformSpec{Cipher: CipherAES, Hash: HashSHA1, Auth: AuthPSK, Group: GroupMODP1536})

	bufA, err := a.Finalize()
	require.NoError(t, err)
	bufB, err := b.Finalize()
	require.NoError(t, err)

	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 2, b.Count())
	assert.Len(t, bufA, 24)
	assert.Len(t, bufB, 48)
	assert.Equal(t, NextPayloadNone, bufA[0])
	assert.Equal(t, NextPayloadTransform, bufB[0])
}
