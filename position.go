package wav

import (
	"io"
)

// NumFrames returns the number of complete sample frames in the data
// chunk. The word-alignment pad byte, when present, is not counted.
func (f *File) NumFrames() int64 {
	if f.fmtc.blockAlign == 0 {
		return 0
	}

	return int64(f.data.size) / int64(f.fmtc.blockAlign)
}

// Tell reports the cursor position as a frame index into the sample
// data.
func (f *File) Tell() (int64, error) {
	pos, err := f.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, f.setErr(osFailure("tell", err))
	}

	offset := pos - f.headerSize()
	if offset < 0 {
		offset = 0
	}

	f.setErr(nil)

	return offset / int64(f.fmtc.blockAlign), nil
}

// Seek moves the cursor to a frame index. The offset is interpreted
// relative to whence: io.SeekStart, io.SeekCurrent, or io.SeekEnd
// (end of sample data). The resulting index must lie in
// [0, NumFrames()]; otherwise the call fails with ErrInvalidParam and
// the cursor does not move. Seeking to exactly NumFrames() lands on
// end of stream.
func (f *File) Seek(offset int64, whence int) error {
	length := f.NumFrames()

	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		cur, err := f.Tell()
		if err != nil {
			return err
		}

		offset += cur
	case io.SeekEnd:
		offset += length
	default:
		return f.setErr(paramErr("bad seek whence"))
	}

	if offset < 0 || offset > length {
		return f.setErr(paramErr("seek target outside sample data"))
	}

	target := f.headerSize() + offset*int64(f.fmtc.blockAlign)
	if _, err := f.f.Seek(target, io.SeekStart); err != nil {
		return f.setErr(osFailure("seek", err))
	}

	return f.setErr(nil)
}

// Rewind moves the cursor back to the first sample frame.
func (f *File) Rewind() error {
	return f.Seek(0, io.SeekStart)
}

// EOF reports whether the cursor sits at or past the end of the sample
// data.
func (f *File) EOF() bool {
	pos, err := f.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return true
	}

	return pos >= f.headerSize()+int64(f.data.size)
}
