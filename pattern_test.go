package ikescan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePatternFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vendor-ids")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadVendorPatterns(t *testing.T) {
	path := writePatternFile(t, `# Vendor ID patterns
Windows-2000	4048b7d56ebce885

Checkpoint	f4ed19e0c114eb51
broken-line
bad-hex	zzzz
Raptor	526170746f72
`)

	patterns, err := LoadVendorPatterns(path)
	require.NoError(t, err)
	require.Len(t, patterns, 3, "malformed lines are skipped, not fatal")

	assert.Equal(t, "Windows-2000", patterns[0].Name)
	assert.Equal(t, []byte{0x40, 0x48, 0xb7, 0xd5, 0x6e, 0xbc, 0xe8, 0x85}, patterns[0].Data)
	assert.Equal(t, "Checkpoint", patterns[1].Name)
	assert.Equal(t, "Raptor", patterns[2].Name)
	assert.Equal(t, []byte("Raptor"), patterns[2].Data)
}

func TestLoadVendorPatterns_missingFile(t *testing.T) {
	_, err := LoadVendorPatterns(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func Test_matchVendorID(t *testing.T) {
	patterns := []VendorPattern{
		{Name: "long", Data: []byte{0x01, 0x02, 0x03, 0x04}},
		{Name: "short", Data: []byte{0x01, 0x02}},
		{Name: "other", Data: []byte{0xff}},
	}

	tests := []struct {
		name     string
		body     []byte
		wantName string
		wantOK   bool
	}{
		{
			"exact match",
			[]byte{0x01, 0x02, 0x03, 0x04},
			"long",
			true,
		},
		{
			"pattern is prefix of body",
			[]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06},
			"long",
			true,
		},
		{
			"falls through to a later entry",
			[]byte{0x01, 0x02, 0x99},
			"short",
			true,
		},
		{
			"body shorter than pattern still matches on common prefix",
			[]byte{0x01, 0x02, 0x03},
			"long",
			true,
		},
		{
			"no match",
			[]byte{0xaa, 0xbb},
			"",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := matchVendorID(tt.body, patterns)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
		})
	}
}
