package ikescan

import (
	"bytes"
	"testing"
)

func Test_parseBigEndianUint16(t *testing.T) {
	type args struct {
		x   []byte
		off int
	}
	tests := []struct {
		name   string
		args   args
		want   uint16
		wantOK bool
	}{
		{
			"zero offset",
			args{[]byte{0x12, 0x34}, 0},
			0x1234,
			true,
		},
		{
			"inner offset",
			args{[]byte{0x00, 0x12, 0x34}, 1},
			0x1234,
			true,
		},
		{
			"offset past end",
			args{[]byte{0x12, 0x34}, 1},
			0,
			false,
		},
		{
			"negative offset",
			args{[]byte{0x12, 0x34}, -1},
			0,
			false,
		},
		{
			"empty input",
			args{nil, 0},
			0,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBigEndianUint16(tt.args.x, tt.args.off)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseBigEndianUint16() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func Test_parseBigEndianUint32(t *testing.T) {
	type args struct {
		x   []byte
		off int
	}
	tests := []struct {
		name   string
		args   args
		want   uint32
		wantOK bool
	}{
		{
			"zero offset",
			args{[]byte{0x12, 0x34, 0x56, 0x78}, 0},
			0x12345678,
			true,
		},
		{
			"offset past end",
			args{[]byte{0x12, 0x34, 0x56, 0x78}, 1},
			0,
			false,
		},
		{
			"short input",
			args{[]byte{0x12, 0x34}, 0},
			0,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBigEndianUint32(tt.args.x, tt.args.off)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseBigEndianUint32() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func Test_serializeBigEndianUint16(t *testing.T) {
	if got := serializeBigEndianUint16(0xdead); !bytes.Equal(got, []byte{0xde, 0xad}) {
		t.Errorf("serializeBigEndianUint16() = [% X]", got)
	}
}

func Test_serializeBigEndianUint32(t *testing.T) {
	if got := serializeBigEndianUint32(0xdeadbeef); !bytes.Equal(got, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("serializeBigEndianUint32() = [% X]", got)
	}
}

func Test_putBigEndianUint32(t *testing.T) {
	buf := make([]byte, 6)
	putBigEndianUint32(buf, 1, 0xdeadbeef)
	if !bytes.Equal(buf, []byte{0x00, 0xde, 0xad, 0xbe, 0xef, 0x00}) {
		t.Errorf("putBigEndianUint32() = [% X]", buf)
	}
}
