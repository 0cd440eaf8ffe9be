package wav

import (
	"encoding/binary"

	"github.com/go-audio/riff"
)

// WAVE format category tags, per the Microsoft WAVE specification.
const (
	FormatPCM        = 0x0001
	FormatIEEEFloat  = 0x0003
	FormatALaw       = 0x0006
	FormatMuLaw      = 0x0007
	FormatExtensible = 0xFFFE
)

// Serialized size of the format chunk body for each layout variant:
// plain PCM, non-PCM with an empty extension field, and
// WAVE_FORMAT_EXTENSIBLE with its 22-byte extension.
const (
	fmtBodySizePCM        = 16
	fmtBodySizeNonPCM     = 18
	fmtBodySizeExtensible = 40
)

// riffChunkHeaderSize is the tag + size preamble shared by every chunk.
const riffChunkHeaderSize = 8

var (
	cidRiff = riff.RiffID
	cidWave = riff.WavFormatID
	cidFmt  = riff.FmtID
	cidData = riff.DataFormatID
	cidFact = [4]byte{'f', 'a', 'c', 't'}
)

// masterChunk is the outer RIFF chunk. Its tag and WAVE form tag are
// validated on parse and constant on write, so only the size survives
// in memory.
type masterChunk struct {
	size uint32
}

// formatChunk mirrors the on-disk fmt chunk body. The extension fields
// past bitsPerSample are only serialized when size says they exist.
type formatChunk struct {
	size           uint32
	formatTag      uint16
	numChannels    uint16
	sampleRate     uint32
	avgBytesPerSec uint32
	blockAlign     uint16
	bitsPerSample  uint16

	extSize            uint16
	validBitsPerSample uint16
	channelMask        uint32
	subFormat          [16]byte
}

// factChunk carries the declared sample length for non-PCM encodings.
// A nil *factChunk on the File means the container has no fact chunk.
type factChunk struct {
	size         uint32
	sampleLength uint32
}

type dataChunk struct {
	size uint32
}

const (
	ksSubFormatGUIDTail0  = 0x00
	ksSubFormatGUIDTail1  = 0x00
	ksSubFormatGUIDTail2  = 0x10
	ksSubFormatGUIDTail3  = 0x00
	ksSubFormatGUIDTail4  = 0x80
	ksSubFormatGUIDTail5  = 0x00
	ksSubFormatGUIDTail6  = 0x00
	ksSubFormatGUIDTail7  = 0xAA
	ksSubFormatGUIDTail8  = 0x00
	ksSubFormatGUIDTail9  = 0x38
	ksSubFormatGUIDTail10 = 0x9B
	ksSubFormatGUIDTail11 = 0x71
)

// makeSubFormatGUID builds the KSDATAFORMAT GUID for a format tag.
func makeSubFormatGUID(formatTag uint16) [16]byte {
	var guid [16]byte
	binary.LittleEndian.PutUint32(guid[:4], uint32(formatTag))
	guid[4] = ksSubFormatGUIDTail0
	guid[5] = ksSubFormatGUIDTail1
	guid[6] = ksSubFormatGUIDTail2
	guid[7] = ksSubFormatGUIDTail3
	guid[8] = ksSubFormatGUIDTail4
	guid[9] = ksSubFormatGUIDTail5
	guid[10] = ksSubFormatGUIDTail6
	guid[11] = ksSubFormatGUIDTail7
	guid[12] = ksSubFormatGUIDTail8
	guid[13] = ksSubFormatGUIDTail9
	guid[14] = ksSubFormatGUIDTail10
	guid[15] = ksSubFormatGUIDTail11

	return guid
}

// decodeFmtBody decodes a fmt chunk body into a formatChunk. The body
// length is the declared chunk size; the extension fields are decoded
// only when the body is long enough to carry them.
func decodeFmtBody(body []byte) (formatChunk, error) {
	var fc formatChunk

	if len(body) < fmtBodySizePCM {
		return fc, formatErr("fmt chunk body too short")
	}

	fc.size = uint32(len(body))
	fc.formatTag = binary.LittleEndian.Uint16(body[0:2])
	fc.numChannels = binary.LittleEndian.Uint16(body[2:4])
	fc.sampleRate = binary.LittleEndian.Uint32(body[4:8])
	fc.avgBytesPerSec = binary.LittleEndian.Uint32(body[8:12])
	fc.blockAlign = binary.LittleEndian.Uint16(body[12:14])
	fc.bitsPerSample = binary.LittleEndian.Uint16(body[14:16])

	if len(body) >= fmtBodySizeNonPCM {
		fc.extSize = binary.LittleEndian.Uint16(body[16:18])
	}

	if fc.extSize >= 22 && len(body) >= fmtBodySizeExtensible {
		fc.validBitsPerSample = binary.LittleEndian.Uint16(body[18:20])
		fc.channelMask = binary.LittleEndian.Uint32(body[20:24])
		copy(fc.subFormat[:], body[24:40])
	}

	return fc, nil
}

// encodeFmtBody serializes the fmt chunk body into dst, which must be
// fc.size bytes long. Bodies longer than the known field set are
// zero-padded past the extension fields.
func encodeFmtBody(fc *formatChunk, dst []byte) {
	binary.LittleEndian.PutUint16(dst[0:2], fc.formatTag)
	binary.LittleEndian.PutUint16(dst[2:4], fc.numChannels)
	binary.LittleEndian.PutUint32(dst[4:8], fc.sampleRate)
	binary.LittleEndian.PutUint32(dst[8:12], fc.avgBytesPerSec)
	binary.LittleEndian.PutUint16(dst[12:14], fc.blockAlign)
	binary.LittleEndian.PutUint16(dst[14:16], fc.bitsPerSample)

	if len(dst) >= fmtBodySizeNonPCM {
		binary.LittleEndian.PutUint16(dst[16:18], fc.extSize)
	}

	if len(dst) >= fmtBodySizeExtensible {
		binary.LittleEndian.PutUint16(dst[18:20], fc.validBitsPerSample)
		binary.LittleEndian.PutUint32(dst[20:24], fc.channelMask)
		copy(dst[24:40], fc.subFormat[:])
	}
}
