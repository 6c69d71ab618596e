package inmemory

import (
	"testing"
	"time"

	recordsdomain "cepip-app-go/internal/domain/records"
)

func TestLookupCacheExpiresEntries(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewLookupCache()
	cache.now = func() time.Time { return now }

	cache.Set(recordsdomain.LookupRoles, []recordsdomain.LookupItem{{ID: 1, Name: "Gerente"}}, time.Minute)

	items, ok := cache.Get(recordsdomain.LookupRoles)
	if !ok || len(items) != 1 || items[0].Name != "Gerente" {
		t.Fatalf("expected cached roles, got %v %v", items, ok)
	}

	items[0].Name = "changed"
	again, _ := cache.Get(recordsdomain.LookupRoles)
	if again[0].Name != "Gerente" {
		t.Fatalf("expected cache to hand out copies, got %q", again[0].Name)
	}

	now = now.Add(time.Minute)
	if _, ok := cache.Get(recordsdomain.LookupRoles); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestLookupCacheClearAndZeroTTL(t *testing.T) {
	cache := NewLookupCache()

	cache.Set(recordsdomain.LookupSectors, []recordsdomain.LookupItem{{ID: 1, Name: "Industria"}}, 0)
	if _, ok := cache.Get(recordsdomain.LookupSectors); ok {
		t.Fatalf("expected zero ttl to skip caching")
	}

	cache.Set(recordsdomain.LookupSectors, []recordsdomain.LookupItem{{ID: 1, Name: "Industria"}}, time.Hour)
	cache.Set(recordsdomain.LookupStreets, []recordsdomain.LookupItem{}, time.Hour)
	cache.Clear()
	if _, ok := cache.Get(recordsdomain.LookupSectors); ok {
		t.Fatalf("expected clear to drop sectors")
	}
	if _, ok := cache.Get(recordsdomain.LookupStreets); ok {
		t.Fatalf("expected clear to drop streets")
	}
}
