package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("Get on empty cache reported a hit")
	}

	c.Set("k", 42, 0)
	v, ok := c.Get("k")
	if !ok {
		t.Fatalf("Get after Set missed")
	}
	if v.(int) != 42 {
		t.Fatalf("Get = %v; want 42", v)
	}

	c.Set("k", "replaced", 0)
	v, _ = c.Get("k")
	if v.(string) != "replaced" {
		t.Fatalf("Get after overwrite = %v; want replaced", v)
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	c.Set("short", 1, 10*time.Millisecond)

	if _, ok := c.Get("short"); !ok {
		t.Fatalf("entry expired before its TTL")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("short"); ok {
		t.Fatalf("entry survived past its TTL")
	}
	// Expired entries are removed on access.
	if c.Len() != 0 {
		t.Fatalf("Len = %d after expired read; want 0", c.Len())
	}
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute)
	c.Set(DashboardKey("u1", "2026-08-01..2026-08-31"), 1, 0)
	c.Set(DashboardKey("u2", "2026-08-01..2026-08-31"), 2, 0)
	c.Set(SyncStatusKey("u1"), 3, 0)

	if n := c.DeleteByPrefix(PrefixDashboard); n != 2 {
		t.Fatalf("DeleteByPrefix(dashboard) = %d; want 2", n)
	}
	if _, ok := c.Get(SyncStatusKey("u1")); !ok {
		t.Fatalf("sync-status entry removed by dashboard prefix delete")
	}
	if n := c.DeleteByPrefix(PrefixSyncStatus); n != 1 {
		t.Fatalf("DeleteByPrefix(sync-status) = %d; want 1", n)
	}
	if c.Len() != 0 {
		t.Fatalf("Len = %d; want 0", c.Len())
	}
	if n := c.DeleteByPrefix(PrefixDashboard); n != 0 {
		t.Fatalf("DeleteByPrefix on empty cache = %d; want 0", n)
	}
}

func TestDefaultTTLCoercion(t *testing.T) {
	c := New(-1)
	if c.defaultTTL != time.Minute {
		t.Fatalf("defaultTTL = %v; want coerced 1m", c.defaultTTL)
	}
}

func TestKeyBuilders(t *testing.T) {
	if got := DashboardKey("u1", "2026-08-01..2026-08-02"); got != "dashboard:u1:2026-08-01..2026-08-02" {
		t.Fatalf("DashboardKey = %q", got)
	}
	if got := SyncStatusKey("u1"); got != "sync-status:u1" {
		t.Fatalf("SyncStatusKey = %q", got)
	}
}
