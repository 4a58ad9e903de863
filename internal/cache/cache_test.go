package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/sanixdarker/gqlg/pkg/querygen"
)

func TestCache_BasicOperations(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	t.Run("set and get", func(t *testing.T) {
		c.Set("key1", "value1")

		val, ok := c.Get("key1")
		if !ok {
			t.Error("expected key to exist")
		}
		if val != "value1" {
			t.Errorf("expected 'value1', got %v", val)
		}
	})

	t.Run("get non-existent key", func(t *testing.T) {
		val, ok := c.Get("nonexistent")
		if ok || val != nil {
			t.Errorf("expected miss, got %v", val)
		}
	})

	t.Run("delete key", func(t *testing.T) {
		c.Set("toDelete", "value")
		c.Delete("toDelete")

		if _, ok := c.Get("toDelete"); ok {
			t.Error("expected key to be deleted")
		}
	})
}

func TestCache_Expiration(t *testing.T) {
	c := New(10 * time.Millisecond)
	defer c.Close()

	c.Set("short", "v")
	c.SetWithTTL("long", "v", time.Hour)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expected entry to expire")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("expected entry with custom TTL to survive")
	}

	c.removeExpired()
	if c.Len() != 1 {
		t.Errorf("expected 1 entry after cleanup, got %d", c.Len())
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			c.Set(key, i)
			c.Get(key)
		}(i)
	}
	wg.Wait()

	if c.Len() != 20 {
		t.Errorf("expected 20 entries, got %d", c.Len())
	}
}

func TestResultCache(t *testing.T) {
	c := NewResultCache(time.Minute)
	defer c.Close()

	res := &querygen.Result{DepthLimit: 3}
	c.SetResult("abc", 3, res)

	got, ok := c.GetResult("abc", 3)
	if !ok || got != res {
		t.Errorf("expected cached result, got %v", got)
	}
	if _, ok := c.GetResult("abc", 4); ok {
		t.Error("expected miss for another depth limit")
	}

	c.Set(resultKey("bad", 1), "not a result")
	if _, ok := c.GetResult("bad", 1); ok {
		t.Error("expected miss for a value of another type")
	}
}
