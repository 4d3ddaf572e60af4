package container

import (
	"errors"
	"testing"
)

func mustCache(t *testing.T, capacity int) *Cache {
	t.Helper()
	c, err := NewCache(capacity, nil)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	return c
}

func TestNewCache_rejects_non_positive_capacity(t *testing.T) {
	if _, err := NewCache(0, nil); err == nil {
		t.Error("expected error for capacity 0")
	}
}

func TestCache_hit_skips_loader(t *testing.T) {
	c := mustCache(t, 2)

	loads := 0
	load := func() (Container, error) {
		loads++
		return newContainer(1, nil, nil, []Video{{ID: 10}}), nil
	}

	first, err := c.GetOrLoad(1, load)
	if err != nil {
		t.Fatalf("GetOrLoad: %v", err)
	}
	second, err := c.GetOrLoad(1, load)
	if err != nil {
		t.Fatalf("GetOrLoad: %v", err)
	}

	if loads != 1 {
		t.Errorf("expected exactly 1 load, got %d", loads)
	}
	if first.Title != second.Title || len(first.Videos) != len(second.Videos) {
		t.Errorf("hit must return an identical container: %+v vs %+v", first, second)
	}
}

func TestCache_loader_error_not_cached(t *testing.T) {
	c := mustCache(t, 2)

	loads := 0
	failing := func() (Container, error) {
		loads++
		return Container{}, errors.New("upstream down")
	}

	if _, err := c.GetOrLoad(1, failing); err == nil {
		t.Fatal("expected loader error to propagate")
	}
	if _, err := c.GetOrLoad(1, failing); err == nil {
		t.Fatal("expected loader error to propagate")
	}

	if loads != 2 {
		t.Errorf("failed loads must not populate the cache: expected 2 loads, got %d", loads)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestCache_lru_eviction_order(t *testing.T) {
	c := mustCache(t, 2)

	loadFor := func(id int, loads *int) func() (Container, error) {
		return func() (Container, error) {
			*loads++
			return newContainer(id, nil, nil, nil), nil
		}
	}

	var loads1, loads2, loads3 int
	c.GetOrLoad(1, loadFor(1, &loads1))
	c.GetOrLoad(2, loadFor(2, &loads2))
	c.GetOrLoad(3, loadFor(3, &loads3)) // capacity 2: evicts 1, the least recently used

	c.GetOrLoad(1, loadFor(1, &loads1))
	if loads1 != 2 {
		t.Errorf("1 should have been evicted before 2: expected re-load, got %d loads", loads1)
	}

	// 3 was inserted after 2 and before re-loading 1 evicted 2; it must still
	// be resident.
	c.GetOrLoad(3, loadFor(3, &loads3))
	if loads3 != 1 {
		t.Errorf("3 should still be cached, got %d loads", loads3)
	}
}

func TestCache_read_refreshes_recency(t *testing.T) {
	c := mustCache(t, 2)

	loadFor := func(id int, loads *int) func() (Container, error) {
		return func() (Container, error) {
			*loads++
			return newContainer(id, nil, nil, nil), nil
		}
	}

	var loads1, loads2 int
	c.GetOrLoad(1, loadFor(1, &loads1))
	c.GetOrLoad(2, loadFor(2, &loads2))
	c.GetOrLoad(1, loadFor(1, &loads1)) // hit: 2 is now least recently used
	c.PutMany([]Container{newContainer(3, nil, nil, nil)})

	c.GetOrLoad(1, loadFor(1, &loads1))
	if loads1 != 1 {
		t.Errorf("1 was most recently used and must survive, got %d loads", loads1)
	}
	c.GetOrLoad(2, loadFor(2, &loads2))
	if loads2 != 2 {
		t.Errorf("2 was least recently used and must be evicted, got %d loads", loads2)
	}
}

func TestCache_put_many_respects_capacity_in_order(t *testing.T) {
	c := mustCache(t, 2)

	c.PutMany([]Container{
		newContainer(1, nil, nil, nil),
		newContainer(2, nil, nil, nil),
		newContainer(3, nil, nil, nil),
	})

	if c.Len() != 2 {
		t.Fatalf("expected 2 resident entries, got %d", c.Len())
	}

	// The earliest entry in the batch is evicted first.
	loads := 0
	c.GetOrLoad(1, func() (Container, error) {
		loads++
		return newContainer(1, nil, nil, nil), nil
	})
	if loads != 1 {
		t.Error("1 should have been evicted by the batch insert")
	}
}
