package wav

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestHeaderSize(t *testing.T) {
	f := &File{}
	f.initDefaultChunks()

	if got := f.headerSize(); got != 44 {
		t.Errorf("fresh PCM headerSize=%d, want 44", got)
	}

	f.fact = &factChunk{size: 4}

	if got := f.headerSize(); got != 56 {
		t.Errorf("headerSize with fact=%d, want 56", got)
	}

	f.fmtc.size = fmtBodySizeExtensible
	f.fact = nil

	if got := f.headerSize(); got != 68 {
		t.Errorf("extensible headerSize=%d, want 68", got)
	}
}

// The master chunk size counts everything after its own header and is
// rounded up to a word boundary when the payload length is odd.
func TestMasterSizeEvenRounding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")

	f, err := Open(path, "w")
	if err != nil {
		t.Fatal(err)
	}

	if err := f.SetNumChannels(1); err != nil {
		t.Fatal(err)
	}

	if err := f.SetSampleSize(1); err != nil {
		t.Fatal(err)
	}

	if _, err := f.WriteFrames([][]byte{{1, 2, 3}}, 3); err != nil {
		t.Fatal(err)
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	master := binary.LittleEndian.Uint32(data[4:8])

	// 4 (WAVE) + 24 (fmt) + 8 (data header) + 3 (payload) = 39, rounded
	// up to 40.
	if master != 40 {
		t.Errorf("master size=%d, want 40", master)
	}

	if int64(len(data)) != 8+int64(master) {
		t.Errorf("file size=%d, want %d", len(data), 8+master)
	}
}

// Every mutation rewrites the header in place, so the bytes on disk
// track the chunk model without an explicit flush.
func TestHeaderRewrittenAfterMutation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")

	f, err := Open(path, "w+")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := f.SetSampleRate(48000); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := binary.LittleEndian.Uint32(data[24:28]); got != 48000 {
		t.Errorf("on-disk sample rate=%d, want 48000", got)
	}
}
