// package testing contains shared testing utilities
package testing

import (
	"context"
	"sync"

	"github.com/desertthunder/lrcdl/internal/lrclib"
	"github.com/desertthunder/lrcdl/internal/metadata"
)

// MockSearcher is a test double for [tasks.Searcher] returning canned candidates.
type MockSearcher struct {
	Candidates []lrclib.Candidate
	Err        error

	mu         sync.Mutex
	calls      int
	LastArtist string
	LastTitle  string
}

func (m *MockSearcher) Search(ctx context.Context, artist, title string) ([]lrclib.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.LastArtist = artist
	m.LastTitle = title

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Candidates, nil
}

// Calls returns how many times Search was invoked.
func (m *MockSearcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// StaticResolver is a test double for [tasks.Resolver] returning a fixed identity.
type StaticResolver struct {
	Identity metadata.Identity
}

func (r *StaticResolver) Resolve(path string) metadata.Identity {
	return r.Identity
}
