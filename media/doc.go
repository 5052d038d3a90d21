// SPDX-License-Identifier: EPL-2.0

// Package media decodes the audio files audio regions refer to and writes
// rendered audio back out.
//
// # Tapes
//
// A Tape is a fully decoded file held in memory as one float32 slice per
// channel, samples in [-1.0, 1.0]. Region playback needs random access at
// fractional positions, so files are decoded once up front instead of being
// streamed.
//
// # Decoders
//
// Each format has a Decoder registered under its file extension:
//   - wav  (PCM 16/24/32-bit) via github.com/go-audio/wav
//   - aiff (PCM 16/24/32-bit) via github.com/go-audio/aiff
//   - mp3  via github.com/hajimehoshi/go-mp3
//   - ogg  (Vorbis) via github.com/jfreymuth/oggvorbis
//
//	reg := media.NewDefaultRegistry()
//	tape, err := reg.Load("drums/loop.wav")
//
// A Library caches tapes by source name and serves them to region players:
//
//	lib := media.NewLibrary("samples", reg, 2)
//	player := render.NewRegionPlayer(track, lib)
//
// A library built for one channel downmixes every tape, and SetSampleRate
// makes it resample tapes to the engine rate as they are loaded.
//
// # Writing
//
// WAVWriter encodes rendered blocks as PCM WAV, one block at a time:
//
//	w, _ := media.NewWAVWriter(file, 48000, 2, 16)
//	w.WriteBlock(buffers)
//	w.Close()
package media
