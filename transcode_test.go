package wav

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func TestContainerSize(t *testing.T) {
	tests := []struct {
		sampleSize int
		want       int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 0},
	}

	for _, tt := range tests {
		if got := containerSize(tt.sampleSize); got != tt.want {
			t.Errorf("containerSize(%d)=%d, want %d", tt.sampleSize, got, tt.want)
		}
	}
}

// 24-bit samples travel in 4-byte containers; the top byte replicates
// the sign of the most significant sample byte.
func TestReadFramesSignExtension(t *testing.T) {
	// Two mono 24-bit frames: a negative and a positive sample.
	payload := []byte{
		0x01, 0x02, 0x83, // -0x7CFDFF, sign bit set
		0x04, 0x05, 0x06, // +0x060504
	}
	path := writeTempWav(t, buildPCMFile(1, 44100, 24, payload))

	f, err := Open(path, "r")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dst := make([]byte, 8)

	n, err := f.ReadFrames([][]byte{dst}, 2)
	if err != nil || n != 2 {
		t.Fatalf("ReadFrames=%d, %v, want 2", n, err)
	}

	want := []byte{
		0x01, 0x02, 0x83, 0xFF,
		0x04, 0x05, 0x06, 0x00,
	}
	if !bytes.Equal(dst, want) {
		t.Fatalf("containers=% x, want % x", dst, want)
	}
}

// Container tail bytes are dropped on write, so a write/read cycle is
// byte identical for the sample bytes across encodings.
func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		channels   int
		sampleSize int
	}{
		{"mono 8-bit", 1, 1},
		{"stereo 16-bit", 2, 2},
		{"mono 24-bit", 1, 3},
		{"stereo 32-bit", 2, 4},
		{"5.1 16-bit", 6, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "x.wav")

			f, err := Open(path, "w+")
			if err != nil {
				t.Fatal(err)
			}

			if err := f.SetNumChannels(tt.channels); err != nil {
				t.Fatal(err)
			}

			if err := f.SetSampleSize(tt.sampleSize); err != nil {
				t.Fatal(err)
			}

			container := containerSize(tt.sampleSize)
			frames := 4

			src := make([][]byte, tt.channels)
			for i := range src {
				src[i] = make([]byte, frames*container)
				for j := range src[i] {
					src[i][j] = byte(i*31 + j*7)
				}
				// The tail bytes are ignored by the write path; only the
				// sample bytes must survive.
				for j := 0; j < frames; j++ {
					for k := tt.sampleSize; k < container; k++ {
						src[i][j*container+k] = 0
					}
				}
			}

			n, err := f.WriteFrames(src, frames)
			if err != nil || n != frames {
				t.Fatalf("WriteFrames=%d, %v, want %d", n, err, frames)
			}

			if err := f.Rewind(); err != nil {
				t.Fatal(err)
			}

			dst := channelBuffers(tt.channels, frames, container)

			n, err = f.ReadFrames(dst, frames)
			if err != nil || n != frames {
				t.Fatalf("ReadFrames=%d, %v, want %d", n, err, frames)
			}

			for i := range src {
				for j := 0; j < frames; j++ {
					got := dst[i][j*container : j*container+tt.sampleSize]
					want := src[i][j*container : j*container+tt.sampleSize]

					if !bytes.Equal(got, want) {
						t.Fatalf("channel %d frame %d: got % x, want % x", i, j, got, want)
					}
				}
			}

			if err := f.Close(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestReadFramesClampsToRemaining(t *testing.T) {
	path := writeTempWav(t, buildPCMFile(1, 8000, 16, []byte{1, 0, 2, 0, 3, 0}))

	f, err := Open(path, "r")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dst := make([]byte, 20)

	n, err := f.ReadFrames([][]byte{dst}, 10)
	if err != nil {
		t.Fatal(err)
	}

	if n != 3 {
		t.Fatalf("ReadFrames=%d, want 3", n)
	}

	// A second read at end of data is a clean zero.
	n, err = f.ReadFrames([][]byte{dst}, 10)
	if err != nil || n != 0 {
		t.Fatalf("ReadFrames at EOF=%d, %v, want 0, nil", n, err)
	}
}

func TestWriteFramesZeroCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")

	f, err := Open(path, "w")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	n, err := f.WriteFrames(nil, 0)
	if err != nil || n != 0 {
		t.Fatalf("WriteFrames=%d, %v, want 0, nil", n, err)
	}

	if f.NumFrames() != 0 {
		t.Errorf("NumFrames=%d after zero-count write, want 0", f.NumFrames())
	}
}

func TestFrameAccessModeChecks(t *testing.T) {
	dir := t.TempDir()
	dst := make([]byte, 4)

	rdPath := writeTempWav(t, buildPCMFile(1, 8000, 16, []byte{1, 0}))

	rd, err := Open(rdPath, "r")
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()

	if _, err := rd.WriteFrames([][]byte{dst}, 1); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("write on read-only: err=%v, want ErrInvalidMode", err)
	}

	wr, err := Open(filepath.Join(dir, "w.wav"), "w")
	if err != nil {
		t.Fatal(err)
	}
	defer wr.Close()

	if _, err := wr.ReadFrames([][]byte{dst, dst}, 1); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("read on write-only: err=%v, want ErrInvalidMode", err)
	}
}

func TestFrameAccessRejectsExtensible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")

	f, err := Open(path, "w+")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := f.SetFormatTag(FormatExtensible); err != nil {
		t.Fatal(err)
	}

	dst := make([]byte, 4)

	if _, err := f.WriteFrames([][]byte{dst, dst}, 1); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("write on extensible: err=%v, want ErrInvalidFormat", err)
	}

	if _, err := f.ReadFrames([][]byte{dst, dst}, 1); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("read on extensible: err=%v, want ErrInvalidFormat", err)
	}
}

func TestFrameBufferValidation(t *testing.T) {
	path := writeTempWav(t, buildPCMFile(2, 8000, 16, []byte{1, 0, 2, 0}))

	f, err := Open(path, "r")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// One buffer for a stereo file.
	if _, err := f.ReadFrames([][]byte{make([]byte, 2)}, 1); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("wrong buffer count: err=%v, want ErrInvalidParam", err)
	}

	// Buffers too small for the frame count.
	short := [][]byte{make([]byte, 1), make([]byte, 1)}
	if _, err := f.ReadFrames(short, 1); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("short buffers: err=%v, want ErrInvalidParam", err)
	}
}

// Writing updates the fact chunk's sample length alongside the data
// size.
func TestWriteFramesUpdatesFact(t *testing.T) {
	base := buildPCMFile(1, 8000, 16, nil)

	var fact bytes.Buffer

	fact.WriteString("fact")
	fact.Write([]byte{4, 0, 0, 0})
	fact.Write([]byte{0, 0, 0, 0})

	dataStart := 12 + 8 + fmtBodySizePCM
	full := append(append(append([]byte(nil), base[:dataStart]...), fact.Bytes()...), base[dataStart:]...)

	path := writeTempWav(t, full)

	f, err := Open(path, "r+")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}

	if _, err := f.WriteFrames([][]byte{{5, 0, 6, 0}}, 2); err != nil {
		t.Fatal(err)
	}

	if f.fact.sampleLength != 2 {
		t.Errorf("fact sample length=%d, want 2", f.fact.sampleLength)
	}

	chunks, err := parseWavChunksFromFile(path)
	if err != nil {
		t.Fatal(err)
	}

	factChunk, _ := findChunk(chunks, "fact")
	if factChunk == nil {
		t.Fatal("fact chunk missing after write")
	}

	if got := uint32(factChunk.data[0]) | uint32(factChunk.data[1])<<8; got != 2 {
		t.Errorf("on-disk fact sample length=%d, want 2", got)
	}
}
