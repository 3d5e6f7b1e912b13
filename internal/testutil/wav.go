package testutil

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/go-audio/wav"

	"github.com/RenatoCabral2022/WhatsWebService/gentone/internal/audio"
)

// WAVInfo is what a test needs to know about a written file.
type WAVInfo struct {
	FormatTag     uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	RIFFSize      uint32
	DataSize      uint32
	Chunks        []string
	Samples       []int16
}

// ParseWAV walks the RIFF chunks of path by hand and returns the header
// fields and the raw s16le samples of the data chunk.
func ParseWAV(t *testing.T, path string) WAVInfo {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		t.Fatalf("%s: not a RIFF/WAVE file", path)
	}

	info := WAVInfo{RIFFSize: binary.LittleEndian.Uint32(raw[4:8])}
	if int(info.RIFFSize) != len(raw)-8 {
		t.Errorf("%s: RIFF size %d does not match file length %d", path, info.RIFFSize, len(raw))
	}

	for pos := 12; pos+8 <= len(raw); {
		id := string(raw[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(raw[pos+4 : pos+8]))
		body := raw[pos+8:]
		if size > len(body) {
			t.Fatalf("%s: chunk %q size %d overruns file", path, id, size)
		}
		body = body[:size]
		info.Chunks = append(info.Chunks, id)

		switch id {
		case "fmt ":
			if size < 16 {
				t.Fatalf("%s: short fmt chunk (%d bytes)", path, size)
			}
			info.FormatTag = binary.LittleEndian.Uint16(body[0:2])
			info.Channels = binary.LittleEndian.Uint16(body[2:4])
			info.SampleRate = binary.LittleEndian.Uint32(body[4:8])
			info.ByteRate = binary.LittleEndian.Uint32(body[8:12])
			info.BlockAlign = binary.LittleEndian.Uint16(body[12:14])
			info.BitsPerSample = binary.LittleEndian.Uint16(body[14:16])
		case "data":
			info.DataSize = uint32(size)
			info.Samples = audio.BytesToInt16(body)
		}

		pos += 8 + size + size&1
	}
	return info
}

// DecodeWAV reads path through the go-audio decoder. The file must hold at
// least one sample.
func DecodeWAV(t *testing.T, path string) (*wav.Decoder, []int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		t.Fatalf("%s: decoder rejected file", path)
	}
	if err := d.Rewind(); err != nil {
		t.Fatalf("%s: rewind: %v", path, err)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatalf("%s: decode pcm: %v", path, err)
	}
	return d, buf.Data
}
