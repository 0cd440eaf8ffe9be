package wav

import (
	"errors"
	"io"
)

// containerSizes maps an on-disk sample width in bytes to the width of
// the fixed caller-side container holding one channel's sample. 3-byte
// samples travel in 4-byte containers for caller convenience.
var containerSizes = [5]int{0, 1, 2, 4, 4}

func containerSize(sampleSize int) int {
	if sampleSize < 1 || sampleSize > 4 {
		return 0
	}

	return containerSizes[sampleSize]
}

// growTmp makes sure the scratch buffer holds at least n bytes. The
// buffer only grows; it is released on Close.
func (f *File) growTmp(n int) {
	if len(f.tmp) < n {
		f.tmp = make([]byte, n)
	}
}

func (f *File) frameGeometry() (channels, sampleSize, container int, err error) {
	if f.fmtc.formatTag == FormatExtensible {
		return 0, 0, 0, formatErr("raw frame access on extensible format")
	}

	channels = int(f.fmtc.numChannels)
	sampleSize = int(f.fmtc.blockAlign) / channels

	container = containerSize(sampleSize)
	if container == 0 {
		return 0, 0, 0, formatErr("unsupported sample size")
	}

	return channels, sampleSize, container, nil
}

func checkFrameBuffers(buffers [][]byte, channels, frames, container int) error {
	if len(buffers) != channels {
		return paramErr("need one buffer per channel")
	}

	for _, buf := range buffers {
		if len(buf) < frames*container {
			return paramErr("channel buffer too small for frame count")
		}
	}

	return nil
}

// ReadFrames reads up to frames sample frames into the per-channel
// container buffers and returns the number of frames transferred. The
// request is clamped to the remaining unread frames. Each channel
// buffer receives one fixed-width container per frame; when the on-disk
// sample is narrower than its container, the tail bytes replicate the
// sign bit of the most significant sample byte.
func (f *File) ReadFrames(buffers [][]byte, frames int) (int, error) {
	if !f.mode.read {
		return 0, f.setErr(modeErr("file not open for reading"))
	}

	channels, sampleSize, container, err := f.frameGeometry()
	if err != nil {
		return 0, f.setErr(err)
	}

	if frames < 0 {
		return 0, f.setErr(paramErr("negative frame count"))
	}

	cur, err := f.Tell()
	if err != nil {
		return 0, err
	}

	if remain := f.NumFrames() - cur; int64(frames) > remain {
		frames = int(remain)
	}

	if frames == 0 {
		f.setErr(nil)

		return 0, nil
	}

	if err := checkFrameBuffers(buffers, channels, frames, container); err != nil {
		return 0, f.setErr(err)
	}

	need := channels * frames * sampleSize
	f.growTmp(need)

	n, err := io.ReadFull(f.f, f.tmp[:need])
	if err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, f.setErr(osFailure("read frames", err))
		}

		frames = n / (channels * sampleSize)
	}

	frameStride := channels * sampleSize

	for i := 0; i < channels; i++ {
		dst := buffers[i]

		for j := 0; j < frames; j++ {
			src := f.tmp[j*frameStride+i*sampleSize:]
			slot := dst[j*container:]

			copy(slot[:sampleSize], src[:sampleSize])

			// Sign-extend the container tail from the top bit of the
			// most significant sample byte.
			ext := byte(0x00)
			if slot[sampleSize-1]&0x80 != 0 {
				ext = 0xFF
			}

			for k := sampleSize; k < container; k++ {
				slot[k] = ext
			}
		}
	}

	f.setErr(nil)

	return frames, nil
}

// WriteFrames re-interleaves the per-channel container buffers into the
// native sample stream, appends them at the cursor, and resynchronizes
// the header. It returns the number of frames written. A zero frame
// count is a successful no-op.
func (f *File) WriteFrames(buffers [][]byte, frames int) (int, error) {
	if !f.mode.write {
		return 0, f.setErr(modeErr("file not open for writing"))
	}

	channels, sampleSize, container, err := f.frameGeometry()
	if err != nil {
		return 0, f.setErr(err)
	}

	if frames < 0 {
		return 0, f.setErr(paramErr("negative frame count"))
	}

	if frames == 0 {
		f.setErr(nil)

		return 0, nil
	}

	if err := checkFrameBuffers(buffers, channels, frames, container); err != nil {
		return 0, f.setErr(err)
	}

	need := channels * frames * sampleSize
	f.growTmp(need)

	frameStride := channels * sampleSize

	for i := 0; i < channels; i++ {
		src := buffers[i]

		for j := 0; j < frames; j++ {
			copy(f.tmp[j*frameStride+i*sampleSize:j*frameStride+(i+1)*sampleSize],
				src[j*container:j*container+sampleSize])
		}
	}

	if _, err := f.f.Write(f.tmp[:need]); err != nil {
		return 0, f.setErr(osFailure("write frames", err))
	}

	f.data.size += uint32(need)

	if f.fact != nil {
		f.fact.sampleLength += uint32(frames)
	}

	savePos, err := f.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, f.setErr(osFailure("tell", err))
	}

	if err := f.writeHeader(); err != nil {
		return 0, f.setErr(err)
	}

	if _, err := f.f.Seek(savePos, io.SeekStart); err != nil {
		return 0, f.setErr(osFailure("restore cursor", err))
	}

	f.setErr(nil)

	return frames, nil
}
