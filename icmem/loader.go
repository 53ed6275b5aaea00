package icmem

import (
	"slices"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"intcodeweb.org/intcode"
)

// Loader parses programs, caching the parsed memory image by the fingerprint of the text.
// Loader is safe for concurrent use.
type Loader struct {
	mu    sync.Mutex
	cache *simplelru.LRU[intcode.Fingerprint, []Word]
}

func NewLoader(size int) *Loader {
	cache, err := simplelru.NewLRU[intcode.Fingerprint, []Word](size, nil)
	if err != nil {
		panic(err)
	}
	return &Loader{cache: cache}
}

// Load returns a new Machine for the program text.
// Each call returns a Machine with its own memory.
func (l *Loader) Load(text string) (*Machine, error) {
	fp := intcode.FingerprintText(text)
	l.mu.Lock()
	image, exists := l.cache.Get(fp)
	l.mu.Unlock()
	if !exists {
		var err error
		if image, err = ParseWords(text); err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache.Add(fp, image)
		l.mu.Unlock()
	}
	return New(slices.Clone(image)), nil
}

// Len returns the number of cached programs
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Len()
}
