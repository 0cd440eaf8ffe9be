package wav

import (
	"encoding/binary"
)

// headerSize is the on-disk extent of the header region, derived purely
// from the chunk model so it self-updates with every format change.
func (f *File) headerSize() int64 {
	size := int64(riffChunkHeaderSize+4) +
		int64(riffChunkHeaderSize) + int64(f.fmtc.size) +
		int64(riffChunkHeaderSize)

	if f.fact != nil {
		size += int64(riffChunkHeaderSize) + int64(f.fact.size)
	}

	return size
}

// writeHeader recomputes the derived sizes and rewrites the whole
// header region at offset 0 as one contiguous write. It does not
// restore the cursor; callers that care save and restore it around the
// call.
func (f *File) writeHeader() error {
	f.master.size = uint32(4 +
		(riffChunkHeaderSize + f.fmtc.size) +
		(riffChunkHeaderSize + f.data.size))

	if f.fact != nil {
		f.master.size += riffChunkHeaderSize + f.fact.size
	}

	// Chunks are word aligned: an odd payload is followed by one pad
	// byte that the data chunk size does not count.
	if f.master.size%2 != 0 {
		f.master.size++
	}

	hdr := make([]byte, f.headerSize())

	copy(hdr[0:4], cidRiff[:])
	binary.LittleEndian.PutUint32(hdr[4:8], f.master.size)
	copy(hdr[8:12], cidWave[:])

	copy(hdr[12:16], cidFmt[:])
	binary.LittleEndian.PutUint32(hdr[16:20], f.fmtc.size)
	encodeFmtBody(&f.fmtc, hdr[20:20+f.fmtc.size])

	off := 20 + int(f.fmtc.size)

	if f.fact != nil {
		copy(hdr[off:off+4], cidFact[:])
		binary.LittleEndian.PutUint32(hdr[off+4:off+8], f.fact.size)
		binary.LittleEndian.PutUint32(hdr[off+8:off+12], f.fact.sampleLength)
		off += riffChunkHeaderSize + int(f.fact.size)
	}

	copy(hdr[off:off+4], cidData[:])
	binary.LittleEndian.PutUint32(hdr[off+4:off+8], f.data.size)

	if _, err := f.f.Seek(0, 0); err != nil {
		return osFailure("seek to header", err)
	}

	if _, err := f.f.Write(hdr); err != nil {
		return osFailure("write header", err)
	}

	return nil
}
