package wav

import (
	"math"
	"os"
	"strings"
	"time"
)

// fileMode captures the capabilities of a normalized open mode string.
type fileMode struct {
	spelling string
	read     bool
	write    bool
	truncate bool
	excl     bool
	appendTo bool
}

// File is an open WAV container. It is the sole owner of the underlying
// file handle and of the scratch buffer used during transcoding, and it
// must not be shared across goroutines without external locking.
type File struct {
	f    *os.File
	mode fileMode
	err  error

	master masterChunk
	fmtc   formatChunk
	fact   *factChunk
	data   dataChunk

	// tmp is the grow-only scratch buffer for frame transcoding.
	tmp []byte
}

// parseFileMode normalizes a C-style fopen mode spelling ("r", "rb+",
// "w+bx", ...) into its capabilities. The 'b' qualifier is meaningless
// on POSIX and is stripped before matching.
func parseFileMode(mode string) (fileMode, bool) {
	switch strings.ReplaceAll(mode, "b", "") {
	case "r":
		return fileMode{spelling: "r", read: true}, true
	case "r+":
		return fileMode{spelling: "r+", read: true, write: true}, true
	case "w":
		return fileMode{spelling: "w", write: true, truncate: true}, true
	case "w+":
		return fileMode{spelling: "w+", read: true, write: true, truncate: true}, true
	case "wx":
		return fileMode{spelling: "wx", write: true, truncate: true, excl: true}, true
	case "w+x":
		return fileMode{spelling: "w+x", read: true, write: true, truncate: true, excl: true}, true
	case "a":
		return fileMode{spelling: "a", write: true, appendTo: true}, true
	case "a+":
		return fileMode{spelling: "a+", read: true, write: true, appendTo: true}, true
	default:
		return fileMode{}, false
	}
}

// osFlags maps a mode onto os.OpenFile flags. Append modes open the
// file read-write regardless of the caller-facing capabilities: the
// header must be parsed and later patched in place.
func (m fileMode) osFlags() int {
	switch {
	case m.appendTo:
		return os.O_RDWR | os.O_CREATE
	case m.truncate:
		flags := os.O_CREATE | os.O_TRUNC
		if m.excl {
			flags = os.O_CREATE | os.O_EXCL
		}

		if m.read {
			return flags | os.O_RDWR
		}

		return flags | os.O_WRONLY
	case m.write:
		return os.O_RDWR
	default:
		return os.O_RDONLY
	}
}

// Open opens the WAV container at path with the given mode.
//
// Read modes ("r", "r+") parse and validate the existing header. Write
// modes ("w", "w+", "wx", "w+x") truncate or create the file and write
// a fresh default header: PCM, 2 channels, 44100 Hz, 16-bit. Append
// modes ("a", "a+") parse the existing header and position the cursor
// after the payload; if parsing fails for any reason the file is
// silently reinitialized as new, exactly like a write mode.
func Open(path, mode string) (*File, error) {
	f := &File{}

	err := f.init(path, mode)
	if err != nil {
		if f.f != nil {
			f.f.Close()
		}

		return nil, err
	}

	return f, nil
}

// Reopen finalizes the current container and reinitializes the same
// File on another path and mode.
func (f *File) Reopen(path, mode string) error {
	f.finalize()

	f.master = masterChunk{}
	f.fmtc = formatChunk{}
	f.fact = nil
	f.data = dataChunk{}

	return f.setErr(f.init(path, mode))
}

func (f *File) init(path, mode string) error {
	m, ok := parseFileMode(mode)
	if !ok {
		return f.setErr(modeErr("unknown open mode " + mode))
	}

	f.mode = m

	handle, err := os.OpenFile(path, m.osFlags(), 0o644)
	if err != nil {
		return f.setErr(osFailure("open "+path, err))
	}

	f.f = handle

	if m.spelling == "r" || m.spelling == "r+" {
		return f.setErr(f.parseHeader())
	}

	if m.appendTo {
		err := f.parseHeader()
		if err == nil {
			// Existing valid container: continue after the payload.
			return f.setErr(f.seekEndOfPayload())
		}

		// Header parsing failed. Regard it as a new file.
		if err := f.f.Truncate(0); err != nil {
			return f.setErr(osFailure("truncate", err))
		}

		if _, err := f.f.Seek(0, 0); err != nil {
			return f.setErr(osFailure("seek", err))
		}
	}

	f.initDefaultChunks()

	return f.setErr(f.writeHeader())
}

// initDefaultChunks populates the chunk model for a freshly created
// container: 16-bit stereo PCM at 44100 Hz, no fact chunk, empty data.
func (f *File) initDefaultChunks() {
	f.fmtc = formatChunk{
		size:           fmtBodySizePCM,
		formatTag:      FormatPCM,
		numChannels:    2,
		sampleRate:     44100,
		avgBytesPerSec: 44100 * 2 * 2,
		blockAlign:     4,
		bitsPerSample:  16,
		subFormat:      makeSubFormatGUID(FormatPCM),
	}
	f.fact = nil
	f.data = dataChunk{}
}

func (f *File) seekEndOfPayload() error {
	_, err := f.f.Seek(f.headerSize()+int64(f.data.size), 0)
	if err != nil {
		return osFailure("seek", err)
	}

	return nil
}

// finalize flushes the pending odd-byte padding and closes the handle.
func (f *File) finalize() error {
	if f.f == nil {
		return nil
	}

	var err error
	if f.mode.write && f.data.size%2 != 0 && f.EOF() {
		_, werr := f.f.Write([]byte{0})
		if werr != nil {
			err = osFailure("write padding", werr)
		}
	}

	cerr := f.f.Close()
	if err == nil && cerr != nil {
		err = osFailure("close", cerr)
	}

	f.f = nil
	f.tmp = nil

	return err
}

// Close flushes the pending odd-byte padding, if any, and closes the
// underlying file handle. The File must not be used afterwards short of
// a Reopen.
func (f *File) Close() error {
	return f.setErr(f.finalize())
}

// Flush commits buffered writes to stable storage.
func (f *File) Flush() error {
	err := f.f.Sync()
	if err != nil {
		return f.setErr(osFailure("sync", err))
	}

	return f.setErr(nil)
}

// Err returns the outcome of the most recent operation on the File:
// nil after a success, the operation's error otherwise.
func (f *File) Err() error {
	return f.err
}

// setErr mirrors an operation outcome into the last-error slot.
func (f *File) setErr(err error) error {
	f.err = err

	return err
}

// Duration returns the playback time of the sample data written so far.
func (f *File) Duration() time.Duration {
	return time.Duration(f.NumFrames()) * sampleDuration(int(f.fmtc.sampleRate))
}

func sampleDuration(sampleRate int) time.Duration {
	if sampleRate == 0 {
		return 0
	}

	return time.Second / time.Duration(math.Abs(float64(sampleRate)))
}
