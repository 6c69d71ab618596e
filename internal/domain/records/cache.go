package records

import "time"

type LookupCache interface {
	Get(lookup Lookup) ([]LookupItem, bool)
	Set(lookup Lookup, items []LookupItem, ttl time.Duration)
	Clear()
}

type noopLookupCache struct{}

func (noopLookupCache) Get(Lookup) ([]LookupItem, bool) {
	return nil, false
}

func (noopLookupCache) Set(Lookup, []LookupItem, time.Duration) {}

func (noopLookupCache) Clear() {}
