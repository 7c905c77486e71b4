// SPDX-License-Identifier: EPL-2.0

// Package audio holds the format-independent side of the converter: the
// Source stream interface, the extension Registry that maps file names to
// Openers, and the Downmix stage.
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadFrames(dst []float32) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved float32, nominally in [-1.0, 1.0]. ReadFrames
// counts frames, not samples, so a stereo source filling a 1024-value buffer
// returns at most 512. len(dst) must be a multiple of Channels().
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Opener{})
//	opener, ok := registry.Get(filepath.Ext(path))
//
// Extensions are case-insensitive and may include the leading dot.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available, possibly together
// with the last frames:
//
//	for {
//	    n, err := source.ReadFrames(buf)
//	    // Process n frames from buf
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
