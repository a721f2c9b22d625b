package share

import (
	"fmt"
	"sync"
	"testing"

	"github.com/moyoez/localshare-go/types"
)

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	r.Put("stale", "/old")
	r.Replace([]types.ShareEntry{
		{Name: "a", Path: "/a"},
		{Name: "empty", Path: ""},
		{Name: "b", Path: "/b"},
		{Name: "a", Path: "/a2"},
	})

	if _, ok := r.Resolve("stale"); ok {
		t.Error("Replace must drop previous entries")
	}
	if _, ok := r.Resolve("empty"); ok {
		t.Error("Entries without a path must be skipped")
	}
	if p, _ := r.Resolve("a"); p != "/a2" {
		t.Errorf("Expected later duplicate to win, got %q", p)
	}
	list := r.List()
	if len(list) != 2 || list[0].Name != "a" || list[1].Name != "b" {
		t.Errorf("Unexpected order %+v", list)
	}
	if r.Len() != 2 {
		t.Errorf("Expected Len 2, got %d", r.Len())
	}
}

func TestRegistryPutOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Put("x", "/1")
	r.Put("x", "/2")
	if p, _ := r.Resolve("x"); p != "/2" || r.Len() != 1 {
		t.Errorf("Expected single entry /2, got %q (len %d)", p, r.Len())
	}
}

func TestRegistryConcurrentReaders(t *testing.T) {
	r := NewRegistry()
	full := make([]types.ShareEntry, 50)
	for i := range full {
		full[i] = types.ShareEntry{Name: fmt.Sprintf("n%d", i), Path: fmt.Sprintf("/p%d", i)}
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				// a reader sees either the empty set or the full set
				if n := len(r.List()); n != 0 && n != len(full) {
					t.Errorf("Observed partial registry with %d entries", n)
					return
				}
			}
		}()
	}
	for i := 0; i < 100; i++ {
		r.Replace(full)
		r.Replace(nil)
	}
	close(stop)
	wg.Wait()
}
