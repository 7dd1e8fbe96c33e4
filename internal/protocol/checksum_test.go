package protocol

import (
	"hash/crc32"
	"testing"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{
			name: "empty input",
			data: []byte{},
			want: 0x00000000,
		},
		{
			// The classic CRC-32 check value.
			name: "123456789",
			data: []byte("123456789"),
			want: 0xCBF43926,
		},
		{
			name: "single zero byte",
			data: []byte{0x00},
			want: 0xD202EF8D,
		},
		{
			name: "all ones",
			data: []byte{0xFF, 0xFF, 0xFF, 0xFF},
			want: 0xFFFFFFFF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = 0x%08X, want 0x%08X", got, tt.want)
			}
		})
	}
}

// The host-side logger verifies frames with a stock CRC-32, so ours must be
// bit-compatible with the standard implementation.
func TestChecksumMatchesStandardCRC32(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i * 7)
	}

	for length := 0; length <= len(data); length += 13 {
		got := Checksum(data[:length])
		want := crc32.ChecksumIEEE(data[:length])
		if got != want {
			t.Fatalf("Checksum(%d bytes) = 0x%08X, crc32.ChecksumIEEE = 0x%08X", length, got, want)
		}
	}
}

func TestChecksumDeterministic(t *testing.T) {
	data := []byte{0x00, 0x07, 0x00, 0x00, 0x00, 0x2A, 0x08}
	first := Checksum(data)
	for i := 0; i < 10; i++ {
		if got := Checksum(data); got != first {
			t.Fatalf("Checksum() not deterministic: 0x%08X then 0x%08X", first, got)
		}
	}
}

func BenchmarkChecksum(b *testing.B) {
	data := make([]byte, MaxFrameSize)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Checksum(data)
	}
}
