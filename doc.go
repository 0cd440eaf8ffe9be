// Package wav implements a seekable RIFF/WAVE file codec.
//
// A File owns an open WAV container: it parses and validates the chunk
// layout of an existing file, or synthesizes a fresh header for a new
// one, and keeps the on-disk header consistent with the sample data
// written so far. Sample frames move between the interleaved on-disk
// stream and per-channel caller buffers, with sign extension for
// sub-container sample widths (24-bit samples travel in 4-byte
// containers).
//
// Supported encodings are PCM integer (8/16/24/32-bit), 32-bit IEEE
// float, A-law, and mu-law. WAVE_FORMAT_EXTENSIBLE headers can be
// written through the format setters, but the raw frame paths refuse
// extensible files since the sub-format semantics are up to the caller.
//
// Typed convenience paths are available through the go-audio buffer
// types:
//
//   - ReadPCMBuffer / WritePCMBuffer (*audio.IntBuffer)
//   - ReadFloatBuffer / WriteFloatBuffer (*audio.Float32Buffer)
//
// A File is not safe for concurrent use; callers must serialize access.
package wav
