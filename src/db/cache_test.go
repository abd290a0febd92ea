package db

import (
	"testing"
	"time"
)

func TestCacheSetGetDel(t *testing.T) {
	c, err := NewCache(time.Minute)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer c.Close()

	key := Key(CategoryCacheGroup, "user-1", "expense")
	if key != "categories:user-1:expense" {
		t.Fatalf("key = %q", key)
	}
	c.Set(CategoryCacheGroup, key, []string{"Comida"})
	v, ok := c.Get(key)
	if !ok || len(v.([]string)) != 1 {
		t.Fatalf("Get = %v %v", v, ok)
	}

	c.Del(CategoryCacheGroup, key)
	if _, ok := c.Get(key); ok {
		t.Fatalf("entry still present after Del")
	}
}

func TestCacheClearGroup(t *testing.T) {
	c, err := NewCache(time.Minute)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer c.Close()

	c.Set(CategoryCacheGroup, "a", 1)
	c.Set(CategoryCacheGroup, "b", 2)
	c.Set(ProfileCacheGroup, "p", 3)
	c.ClearGroup(CategoryCacheGroup)

	for _, k := range []string{"a", "b"} {
		if _, ok := c.Get(k); ok {
			t.Fatalf("key %s survived ClearGroup", k)
		}
	}
	if _, ok := c.Get("p"); !ok {
		t.Fatalf("other group was cleared")
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	c.Set("g", "k", 1)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("nil cache returned a value")
	}
	c.ClearGroup("g")
}
