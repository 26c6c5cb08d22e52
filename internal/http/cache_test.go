package http

import (
	"fmt"
	"testing"
	"time"

	"inflation/internal/services"
)

func changeResult(start, end int) services.ValueChangeResult {
	return services.ValueChangeResult{StartYear: start, EndYear: end}
}

func TestChangeCache_GetSet(t *testing.T) {
	c := newChangeCache(10, time.Minute)

	if _, ok := c.get("vc:1:2020:2022"); ok {
		t.Fatal("empty cache returned a hit")
	}

	c.set("vc:1:2020:2022", changeResult(2020, 2022))
	got, ok := c.get("vc:1:2020:2022")
	if !ok {
		t.Fatal("stored entry missing")
	}
	if got.StartYear != 2020 || got.EndYear != 2022 {
		t.Errorf("got %d/%d, want 2020/2022", got.StartYear, got.EndYear)
	}
}

func TestChangeCache_SetUpdatesExisting(t *testing.T) {
	c := newChangeCache(10, time.Minute)

	c.set("k", changeResult(2020, 2021))
	c.set("k", changeResult(2020, 2022))

	got, _ := c.get("k")
	if got.EndYear != 2022 {
		t.Errorf("EndYear = %d, want 2022", got.EndYear)
	}
	if c.size() != 1 {
		t.Errorf("size = %d, want 1", c.size())
	}
}

func TestChangeCache_EvictsOldestWhenFull(t *testing.T) {
	c := newChangeCache(3, time.Minute)

	for i := 0; i < 3; i++ {
		c.set(fmt.Sprintf("k%d", i), changeResult(2000+i, 2020))
	}
	// Touch k0 so k1 becomes least recently used.
	c.get("k0")
	c.set("k3", changeResult(2003, 2020))

	if c.size() != 3 {
		t.Fatalf("size = %d, want 3", c.size())
	}
	if _, ok := c.get("k1"); ok {
		t.Error("least recently used entry survived eviction")
	}
	if _, ok := c.get("k0"); !ok {
		t.Error("recently used entry was evicted")
	}
}

func TestChangeCache_ExpiredEntriesMiss(t *testing.T) {
	c := newChangeCache(10, -time.Second) // everything born expired

	c.set("k", changeResult(2020, 2022))
	if _, ok := c.get("k"); ok {
		t.Error("expired entry returned as a hit")
	}
	if c.size() != 0 {
		t.Errorf("size = %d after expired get, want 0", c.size())
	}
}

func TestChangeCache_CleanExpired(t *testing.T) {
	c := newChangeCache(10, -time.Second)
	c.set("k0", changeResult(2020, 2021))
	c.set("k1", changeResult(2020, 2022))

	if cleaned := c.cleanExpired(); cleaned != 2 {
		t.Errorf("cleanExpired() = %d, want 2", cleaned)
	}
	if c.size() != 0 {
		t.Errorf("size = %d after cleanup, want 0", c.size())
	}

	fresh := newChangeCache(10, time.Minute)
	fresh.set("k", changeResult(2020, 2022))
	if cleaned := fresh.cleanExpired(); cleaned != 0 {
		t.Errorf("cleanExpired() = %d on fresh entries, want 0", cleaned)
	}
}
