package cache

import (
	"encoding/json"
	"fmt"

	"alcyxob/fitlocal/internal/training"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneHour                = 60 * 60
	performanceCacheExpire = oneHour * 6
	megabyte               = 1024 * 1024
)

// PerformanceCache keeps last-performance lookups per (profile, exercise).
// A lookup that found nothing is cached too, as "none".
type PerformanceCache struct {
	cache *freecache.Cache
}

func NewPerformanceCache(sizeMB int) *PerformanceCache {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return &PerformanceCache{
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

type entry struct {
	Performance *training.Performance `json:"p"`
}

func cacheKey(profileID, exercise string) []byte {
	return []byte(fmt.Sprintf("perf::%s::%s", profileID, exercise))
}

// Get reports whether a lookup for the pair is cached; the performance may be nil.
func (c *PerformanceCache) Get(profileID, exercise string) (*training.Performance, bool) {
	data, err := c.cache.Get(cacheKey(profileID, exercise))
	if err != nil {
		return nil, false
	}
	var e entry
	if err = json.Unmarshal(data, &e); err != nil {
		log.Errorf("failed to unmarshal cached performance for %s: %s", exercise, err)
		return nil, false
	}
	return e.Performance, true
}

func (c *PerformanceCache) Set(profileID, exercise string, perf *training.Performance) {
	data, err := json.Marshal(entry{Performance: perf})
	if err != nil {
		log.Errorf("failed to marshal performance for %s: %s", exercise, err)
		return
	}
	if err = c.cache.Set(cacheKey(profileID, exercise), data, performanceCacheExpire); err != nil {
		log.Debugf("performance cache set for %s: %s", exercise, err)
	}
}

// Clear drops every entry. Called whenever a session is logged.
func (c *PerformanceCache) Clear() {
	c.cache.Clear()
}

func (c *PerformanceCache) Len() int64 {
	return c.cache.EntryCount()
}
