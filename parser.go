package wav

import (
	"encoding/binary"
	"io"

	"github.com/go-audio/riff"
)

// maxFmtBodySize caps the accepted fmt chunk body. Anything past the
// extensible layout is not a WAV fmt chunk this codec understands.
const maxFmtBodySize = fmtBodySizeExtensible

// parseHeader validates the container's chunk structure from offset 0
// and populates the chunk model. The walk is a strict, ordered state
// machine: RIFF header, WAVE form, fmt chunk, then an optional fact
// chunk immediately followed by the data chunk header. Any short read
// or unexpected tag aborts with ErrInvalidFormat and leaves the chunk
// model unusable.
func (f *File) parseHeader() error {
	p := riff.New(f.f)

	id, size, err := p.IDnSize()
	if err != nil || id != cidRiff {
		return formatErr("missing RIFF chunk header")
	}

	f.master.size = size

	var form [4]byte
	if err := binary.Read(f.f, binary.BigEndian, &form); err != nil || form != cidWave {
		return formatErr("missing WAVE form tag")
	}

	id, size, err = p.IDnSize()
	if err != nil || id != cidFmt {
		return formatErr("missing fmt chunk header")
	}

	if size < fmtBodySizePCM || size > maxFmtBodySize {
		return formatErr("fmt chunk size out of range")
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(f.f, body); err != nil {
		return formatErr("truncated fmt chunk body")
	}

	fc, err := decodeFmtBody(body)
	if err != nil {
		return err
	}

	// Extensible files are writable through the format setters but are
	// rejected here: the read paths do not interpret sub-format
	// semantics.
	switch fc.formatTag {
	case FormatPCM, FormatIEEEFloat, FormatALaw, FormatMuLaw:
	default:
		return formatErr("unsupported format tag")
	}

	if fc.numChannels == 0 || fc.blockAlign == 0 {
		return formatErr("zero channel count or block align")
	}

	f.fmtc = fc
	f.fact = nil

	id, size, err = p.IDnSize()
	if err != nil {
		return formatErr("truncated chunk header after fmt")
	}

	switch id {
	case cidFact:
		if size < 4 {
			return formatErr("fact chunk too small")
		}

		factBody := make([]byte, size)
		if _, err := io.ReadFull(f.f, factBody); err != nil {
			return formatErr("truncated fact chunk body")
		}

		f.fact = &factChunk{
			size:         size,
			sampleLength: binary.LittleEndian.Uint32(factBody[:4]),
		}

		id, size, err = p.IDnSize()
		if err != nil || id != cidData {
			return formatErr("missing data chunk after fact")
		}

		f.data.size = size
	case cidData:
		f.data.size = size
	default:
		return formatErr("unexpected chunk before data")
	}

	return nil
}
