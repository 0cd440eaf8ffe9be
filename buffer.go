package wav

import (
	"encoding/binary"
	"math"

	"github.com/go-audio/audio"
)

// containerToInt decodes one fixed-width container. One-byte containers
// carry unsigned 8-bit PCM; wider containers are signed little-endian,
// already sign-extended by the read path.
func containerToInt(slot []byte, container int) int {
	switch container {
	case 1:
		return int(slot[0])
	case 2:
		return int(int16(binary.LittleEndian.Uint16(slot[:2])))
	default:
		return int(int32(binary.LittleEndian.Uint32(slot[:4])))
	}
}

func intToContainer(value int, slot []byte, container int) {
	switch container {
	case 1:
		slot[0] = byte(value)
	case 2:
		binary.LittleEndian.PutUint16(slot[:2], uint16(int16(value)))
	default:
		binary.LittleEndian.PutUint32(slot[:4], uint32(int32(value)))
	}
}

// channelBuffers allocates one container buffer per channel.
func channelBuffers(channels, frames, container int) [][]byte {
	bufs := make([][]byte, channels)
	for i := range bufs {
		bufs[i] = make([]byte, frames*container)
	}

	return bufs
}

// ReadPCMBuffer fills the interleaved go-audio buffer with raw sample
// values and returns the number of frames transferred. The buffer's
// format and source bit depth are set from the container.
func (f *File) ReadPCMBuffer(buf *audio.IntBuffer) (int, error) {
	if buf == nil {
		return 0, nil
	}

	channels, _, container, err := f.frameGeometry()
	if err != nil {
		return 0, f.setErr(err)
	}

	frames := len(buf.Data) / channels

	chans := channelBuffers(channels, frames, container)

	n, err := f.ReadFrames(chans, frames)
	if err != nil {
		return 0, err
	}

	for j := 0; j < n; j++ {
		for i := 0; i < channels; i++ {
			buf.Data[j*channels+i] = containerToInt(chans[i][j*container:], container)
		}
	}

	buf.Format = f.Format()
	buf.SourceBitDepth = f.BitsPerSample()

	return n, nil
}

// WritePCMBuffer writes the interleaved go-audio buffer's raw sample
// values and returns the number of frames written.
func (f *File) WritePCMBuffer(buf *audio.IntBuffer) (int, error) {
	if buf == nil {
		return 0, nil
	}

	channels, _, container, err := f.frameGeometry()
	if err != nil {
		return 0, f.setErr(err)
	}

	if buf.Format != nil && buf.Format.NumChannels != channels {
		return 0, f.setErr(paramErr("buffer channel count does not match container"))
	}

	frames := len(buf.Data) / channels

	chans := channelBuffers(channels, frames, container)
	for j := 0; j < frames; j++ {
		for i := 0; i < channels; i++ {
			intToContainer(buf.Data[j*channels+i], chans[i][j*container:], container)
		}
	}

	return f.WriteFrames(chans, frames)
}

// ReadFloatBuffer fills the interleaved go-audio float buffer with
// samples normalized to [-1, 1] and returns the number of frames
// transferred. PCM samples are scaled by their container width, 32-bit
// IEEE float samples are passed through clamped, and A-law/mu-law
// samples are expanded to 16-bit before normalization.
func (f *File) ReadFloatBuffer(buf *audio.Float32Buffer) (int, error) {
	if buf == nil {
		return 0, nil
	}

	channels, sampleSize, container, err := f.frameGeometry()
	if err != nil {
		return 0, f.setErr(err)
	}

	if f.fmtc.formatTag == FormatIEEEFloat && sampleSize != 4 {
		return 0, f.setErr(formatErr("unsupported float sample size"))
	}

	frames := len(buf.Data) / channels

	chans := channelBuffers(channels, frames, container)

	n, err := f.ReadFrames(chans, frames)
	if err != nil {
		return 0, err
	}

	for j := 0; j < n; j++ {
		for i := 0; i < channels; i++ {
			slot := chans[i][j*container:]

			var value float32

			switch f.fmtc.formatTag {
			case FormatIEEEFloat:
				value = clampFloat32(math.Float32frombits(binary.LittleEndian.Uint32(slot[:4])), -1, 1)
			case FormatALaw:
				value = normalizePCMInt(int(decodeALawSample(slot[0])), 16)
			case FormatMuLaw:
				value = normalizePCMInt(int(decodeMuLawSample(slot[0])), 16)
			default:
				value = normalizePCMInt(containerToInt(slot, container), 8*sampleSize)
			}

			buf.Data[j*channels+i] = value
		}
	}

	buf.Format = f.Format()
	buf.SourceBitDepth = f.BitsPerSample()

	return n, nil
}

// WriteFloatBuffer writes the interleaved go-audio float buffer,
// quantizing each [-1, 1] sample to the container's encoding, and
// returns the number of frames written.
func (f *File) WriteFloatBuffer(buf *audio.Float32Buffer) (int, error) {
	if buf == nil {
		return 0, nil
	}

	channels, sampleSize, container, err := f.frameGeometry()
	if err != nil {
		return 0, f.setErr(err)
	}

	if f.fmtc.formatTag == FormatIEEEFloat && sampleSize != 4 {
		return 0, f.setErr(formatErr("unsupported float sample size"))
	}

	if buf.Format != nil && buf.Format.NumChannels != channels {
		return 0, f.setErr(paramErr("buffer channel count does not match container"))
	}

	frames := len(buf.Data) / channels

	chans := channelBuffers(channels, frames, container)

	for j := 0; j < frames; j++ {
		for i := 0; i < channels; i++ {
			value := buf.Data[j*channels+i]
			slot := chans[i][j*container:]

			switch f.fmtc.formatTag {
			case FormatIEEEFloat:
				binary.LittleEndian.PutUint32(slot[:4], math.Float32bits(clampFloat32(value, -1, 1)))
			case FormatALaw:
				slot[0] = encodeALawSample(int16(float32ToPCMInt32(value, 16)))
			case FormatMuLaw:
				slot[0] = encodeMuLawSample(int16(float32ToPCMInt32(value, 16)))
			default:
				if sampleSize == 1 {
					slot[0] = float32ToPCMUint8(value)
				} else {
					intToContainer(int(float32ToPCMInt32(value, 8*sampleSize)), slot, container)
				}
			}
		}
	}

	return f.WriteFrames(chans, frames)
}
