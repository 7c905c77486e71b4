// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a stream of interleaved float32 frames.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadFrames fills dst with interleaved float32 samples, nominally in [-1,1].
	// len(dst) must be a multiple of Channels(). Returns the number of frames
	// (not samples) written. When n == 0 with err == io.EOF, the stream is finished.
	ReadFrames(dst []float32) (n int, err error)
	// Close releases any resources.
	Close() error
}

// Opener constructs a Source from a file path.
type Opener interface {
	Open(path string) (Source, error)
}

// OpenerFunc adapts a plain function to the Opener interface.
type OpenerFunc func(path string) (Source, error)

func (f OpenerFunc) Open(path string) (Source, error) { return f(path) }

// Registry of openers by file extension (e.g., "wav", "mp3", "ogg").
// Keys are case-insensitive and may carry a leading dot.
type Registry struct {
	openers map[string]Opener
	mtx     *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		openers: make(map[string]Opener),
		mtx:     &sync.Mutex{},
	}
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func (r *Registry) Register(ext string, o Opener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.openers[normalizeExt(ext)] = o
}

func (r *Registry) Get(ext string) (Opener, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	o, ok := r.openers[normalizeExt(ext)]
	return o, ok
}

// Formats returns the registered extensions in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	exts := make([]string, 0, len(r.openers))
	for ext := range r.openers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)

	return exts
}

// Open picks the opener for path's extension and opens it.
func (r *Registry) Open(path string) (Source, error) {
	ext := filepath.Ext(path)

	o, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	return o.Open(path)
}
