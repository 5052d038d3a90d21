// SPDX-License-Identifier: EPL-2.0

package media

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Library resolves region sources to tapes, decoding each file once.
// A library built for one channel keeps mono downmixes only; one with a sample
// rate set resamples every tape to it.
type Library struct {
	root     string
	registry *Registry
	channels int
	rate     int

	mtx   *sync.Mutex
	tapes map[string]*Tape
}

// NewLibrary resolves relative sources against root.
func NewLibrary(root string, registry *Registry, channels int) *Library {
	return &Library{
		root:     root,
		registry: registry,
		channels: channels,
		mtx:      &sync.Mutex{},
		tapes:    make(map[string]*Tape),
	}
}

// SetSampleRate makes the library resample tapes loaded from now on to rate.
// Zero keeps tapes at their file rate.
func (l *Library) SetSampleRate(rate int) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.rate = rate
}

// Tape returns the decoded tape for source.
func (l *Library) Tape(source string) (*Tape, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if t, ok := l.tapes[source]; ok {
		return t, nil
	}

	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.root, source)
	}

	t, err := l.registry.Load(path)
	if err != nil {
		return nil, err
	}
	if t, err = l.conform(t); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	l.tapes[source] = t

	return t, nil
}

// Put installs an already decoded tape under source, conformed like a
// loaded one. Nothing is stored when conforming fails.
func (l *Library) Put(source string, t *Tape) error {
	if t == nil {
		return fmt.Errorf("%w: nil tape for %q", ErrInvalidTape, source)
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	c, err := l.conform(t)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	l.tapes[source] = c

	return nil
}

func (l *Library) conform(t *Tape) (*Tape, error) {
	if l.channels == 1 {
		t = t.Downmix()
	}
	if l.rate > 0 {
		return t.Resample(l.rate)
	}
	return t, nil
}

// Preload decodes every source up front so rendering never touches disk.
func (l *Library) Preload(sources ...string) error {
	for _, s := range sources {
		if _, err := l.Tape(s); err != nil {
			return fmt.Errorf("preload: %w", err)
		}
	}

	return nil
}
