package shadowvolume

import "github.com/gekko3d/sre/bounds"

// Entry is one cached (object, light) shadow volume, keyed by LightID, with
// a generation stamp used to invalidate it when the object transforms or
// the light moves.
type Entry struct {
	LightID    uint32
	Volume     bounds.Volume
	Generation uint64
}

// Cache is the per-object static shadow-volume cache described by
// UseObjectShadowCache in the original engine: a small linear-scan list,
// since the number of lights affecting any one static object is typically
// tiny. Dynamic (object, light) pairs are never stored in this cache; the
// scene constructs their volume afresh on every lookup miss instead.
type Cache struct {
	entries []Entry
}

// Lookup returns the cached volume for lightID if present and its
// generation matches currentGeneration (the object's
// most_recent_transformation_change counter, or the light's own change
// counter, whichever the caller tracks together as one stamp).
func (c *Cache) Lookup(lightID uint32, currentGeneration uint64) (bounds.Volume, bool) {
	for _, e := range c.entries {
		if e.LightID == lightID {
			if e.Generation != currentGeneration {
				return bounds.Volume{}, false
			}
			return e.Volume, true
		}
	}
	return bounds.Volume{}, false
}

// Store inserts or updates the cached entry for lightID.
func (c *Cache) Store(lightID uint32, v bounds.Volume, generation uint64) {
	for i, e := range c.entries {
		if e.LightID == lightID {
			c.entries[i] = Entry{LightID: lightID, Volume: v, Generation: generation}
			return
		}
	}
	c.entries = append(c.entries, Entry{LightID: lightID, Volume: v, Generation: generation})
}

// Invalidate drops the cached entry for lightID, e.g. when the light is
// deleted or the object stops referencing it.
func (c *Cache) Invalidate(lightID uint32) {
	for i, e := range c.entries {
		if e.LightID == lightID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}
