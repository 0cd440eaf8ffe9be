package wav

import (
	"encoding/binary"

	"github.com/go-audio/audio"
)

// FormatTag returns the WAVE format category tag.
func (f *File) FormatTag() uint16 {
	return f.fmtc.formatTag
}

// NumChannels returns the channel count.
func (f *File) NumChannels() int {
	return int(f.fmtc.numChannels)
}

// SampleRate returns the sample rate in Hz.
func (f *File) SampleRate() int {
	return int(f.fmtc.sampleRate)
}

// BitsPerSample returns the container bit width stored in the format
// chunk. For extensible files this is the full container width; see
// ValidBitsPerSample for the significant bits.
func (f *File) BitsPerSample() int {
	return int(f.fmtc.bitsPerSample)
}

// ValidBitsPerSample returns the number of significant bits in each
// sample: the valid-bits field for extensible files, bits per sample
// otherwise.
func (f *File) ValidBitsPerSample() int {
	if f.fmtc.formatTag == FormatExtensible {
		return int(f.fmtc.validBitsPerSample)
	}

	return int(f.fmtc.bitsPerSample)
}

// SampleSize returns the on-disk width of one channel's sample in
// bytes.
func (f *File) SampleSize() int {
	if f.fmtc.numChannels == 0 {
		return 0
	}

	return int(f.fmtc.blockAlign) / int(f.fmtc.numChannels)
}

// ChannelMask returns the extensible speaker position mask.
func (f *File) ChannelMask() uint32 {
	return f.fmtc.channelMask
}

// SubFormat returns the format tag embedded in the extensible
// sub-format GUID.
func (f *File) SubFormat() uint16 {
	return binary.LittleEndian.Uint16(f.fmtc.subFormat[:2])
}

// Format returns the go-audio view of the container format.
func (f *File) Format() *audio.Format {
	return &audio.Format{
		NumChannels: int(f.fmtc.numChannels),
		SampleRate:  int(f.fmtc.sampleRate),
	}
}

// mutateFormat wraps a format chunk mutation with the mode check and
// the mandatory header resynchronization. The header write outcome is
// the operation's outcome.
func (f *File) mutateFormat(apply func() error) error {
	if !f.mode.write {
		return f.setErr(modeErr("format change on read-only file"))
	}

	if err := apply(); err != nil {
		return f.setErr(err)
	}

	return f.setErr(f.writeHeader())
}

// SetFormatTag switches the encoding. A-law and mu-law force 8-bit
// samples; IEEE float forces a 4- or 8-byte block alignment; switching
// to extensible reserves the 22-byte format extension, switching away
// shrinks the format body again.
func (f *File) SetFormatTag(tag uint16) error {
	return f.mutateFormat(func() error {
		f.fmtc.formatTag = tag

		switch tag {
		case FormatExtensible:
			f.fmtc.extSize = 22
			f.fmtc.size = fmtBodySizeExtensible
		case FormatPCM:
			f.fmtc.extSize = 0
			f.fmtc.size = fmtBodySizePCM
		default:
			f.fmtc.extSize = 0
			f.fmtc.size = fmtBodySizeNonPCM
		}

		switch tag {
		case FormatALaw, FormatMuLaw:
			f.fmtc.bitsPerSample = 8
			f.fmtc.blockAlign = f.fmtc.numChannels
		case FormatIEEEFloat:
			if f.fmtc.blockAlign != 4 && f.fmtc.blockAlign != 8 {
				f.fmtc.blockAlign = 4
			}

			if f.fmtc.bitsPerSample > 8*f.fmtc.blockAlign {
				f.fmtc.bitsPerSample = 8 * f.fmtc.blockAlign
			}
		}

		f.fmtc.avgBytesPerSec = uint32(f.fmtc.blockAlign) * f.fmtc.sampleRate

		return nil
	})
}

// SetNumChannels changes the channel count, keeping the per-channel
// sample width and the block align consistent.
func (f *File) SetNumChannels(n int) error {
	return f.mutateFormat(func() error {
		if n < 1 {
			return paramErr("channel count must be at least 1")
		}

		sampleSize := f.SampleSize()
		f.fmtc.numChannels = uint16(n)
		f.fmtc.blockAlign = uint16(n * sampleSize)
		f.fmtc.avgBytesPerSec = uint32(f.fmtc.blockAlign) * f.fmtc.sampleRate

		return nil
	})
}

// SetSampleRate changes the sample rate and the derived byte rate.
func (f *File) SetSampleRate(rate int) error {
	return f.mutateFormat(func() error {
		if rate < 1 {
			return paramErr("sample rate must be positive")
		}

		f.fmtc.sampleRate = uint32(rate)
		f.fmtc.avgBytesPerSec = uint32(f.fmtc.blockAlign) * f.fmtc.sampleRate

		return nil
	})
}

// SetValidBitsPerSample changes the significant sample bit depth. For
// extensible files the container width stays at the full block-derived
// width and only the valid-bits field moves; otherwise bits per sample
// is set directly.
func (f *File) SetValidBitsPerSample(bits int) error {
	return f.mutateFormat(func() error {
		containerBits := 8 * int(f.fmtc.blockAlign) / int(f.fmtc.numChannels)

		if bits < 1 || bits > containerBits {
			return paramErr("bit depth outside container width")
		}

		if (f.fmtc.formatTag == FormatALaw || f.fmtc.formatTag == FormatMuLaw) && bits != 8 {
			return paramErr("companded formats are 8-bit")
		}

		if f.fmtc.formatTag == FormatExtensible {
			f.fmtc.bitsPerSample = uint16(containerBits)
			f.fmtc.validBitsPerSample = uint16(bits)
		} else {
			f.fmtc.bitsPerSample = uint16(bits)
		}

		return nil
	})
}

// SetSampleSize changes the on-disk width of one channel's sample in
// bytes, updating block align, byte rate, and bit depth together.
func (f *File) SetSampleSize(sampleSize int) error {
	return f.mutateFormat(func() error {
		if sampleSize < 1 {
			return paramErr("sample size must be at least 1")
		}

		f.fmtc.blockAlign = uint16(sampleSize * int(f.fmtc.numChannels))
		f.fmtc.avgBytesPerSec = uint32(f.fmtc.blockAlign) * f.fmtc.sampleRate
		f.fmtc.bitsPerSample = uint16(8 * sampleSize)

		if f.fmtc.formatTag == FormatExtensible {
			f.fmtc.validBitsPerSample = uint16(8 * sampleSize)
		}

		return nil
	})
}

// SetChannelMask sets the extensible speaker position mask.
func (f *File) SetChannelMask(mask uint32) error {
	return f.mutateFormat(func() error {
		if f.fmtc.formatTag != FormatExtensible {
			return formatErr("channel mask requires the extensible format")
		}

		f.fmtc.channelMask = mask

		return nil
	})
}

// SetSubFormat sets the format tag embedded in the extensible
// sub-format GUID.
func (f *File) SetSubFormat(sub uint16) error {
	return f.mutateFormat(func() error {
		if f.fmtc.formatTag != FormatExtensible {
			return formatErr("sub-format requires the extensible format")
		}

		binary.LittleEndian.PutUint16(f.fmtc.subFormat[:2], sub)

		return nil
	})
}
