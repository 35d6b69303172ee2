package ikescan

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// VendorPattern is one fingerprint entry: a display name and the Vendor ID
// prefix bytes that identify an implementation.
type VendorPattern struct {
	Name string
	Data []byte
}

/*
LoadVendorPatterns reads a pattern file with one entry per line:

	# comment
	Windows-2000	4048b7d56ebce88525e7de7f00d6c2d3

The name and the hex prefix are separated by whitespace. Order is
significant: the decoder reports the first matching entry. Malformed lines
are logged and skipped so one bad entry cannot disable fingerprinting.
*/
func LoadVendorPatterns(path string) ([]VendorPattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vendor pattern file: %w", err)
	}
	defer f.Close()

	var patterns []VendorPattern
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			_lg.Warnf("%s:%d: expected \"name pattern\", got %q", path, lineno, line)
			continue
		}
		data, err := hex.DecodeString(fields[1])
		if err != nil {
			_lg.Warnf("%s:%d: bad hex pattern for %s: %v", path, lineno, fields[0], err)
			continue
		}
		patterns = append(patterns, VendorPattern{Name: fields[0], Data: data})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vendor pattern file: %w", err)
	}
	return patterns, nil
}

// matchVendorID scans patterns in order and returns the name of the first
// entry whose bytes prefix-match the VID body. The comparison covers
// min(pattern length, body length) bytes.
func matchVendorID(body []byte, patterns []VendorPattern) (string, bool) {
	for _, p := range patterns {
		n := len(p.Data)
		if len(body) < n {
			n = len(body)
		}
		if bytes.Equal(body[:n], p.Data[:n]) {
			return p.Name, true
		}
	}
	return "", false
}
