package idgen

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestULIDGeneratorUniqueAndOrdered(t *testing.T) {
	g := NewULIDGenerator()

	prev := ""
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.Generate()
		if _, err := ulid.ParseStrict(id); err != nil {
			t.Fatalf("invalid ulid %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		if id <= prev {
			t.Fatalf("expected increasing ids, got %s after %s", id, prev)
		}
		seen[id] = true
		prev = id
	}
}
