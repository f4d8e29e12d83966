package entity

// Handle identifies an entity for its whole lifetime. Handles are never reused.
// The zero Handle never refers to an entity.
type Handle uint64

// Entity is a spawned simulation object. Spatial state lives in the physics world.
type Entity struct {
	Handle  Handle
	Payload Payload
	Impact  *ImpactInfo // Optional; nil means no explosion variant is known

	despawned bool
}

// Kind returns the kind of the entity's payload.
func (e *Entity) Kind() Kind {
	if e == nil || e.Payload == nil {
		return KindUnknown
	}
	return e.Payload.Kind()
}

// Despawned reports whether the entity has been marked for removal.
func (e *Entity) Despawned() bool {
	return e.despawned
}

// kindSet keeps one kind's live entities in insertion order for deterministic iteration.
type kindSet struct {
	byHandle map[Handle]*Entity
	order    []*Entity
}

// Registry owns every entity. It is mutated only by the simulation thread.
//
// Spawns are queued and become visible after Flush; despawns mark the entity
// and are physically removed by Compact, so a tick never invalidates an
// iteration in progress.
type Registry struct {
	sets    [kindCount]kindSet
	pending []*Entity // Entities to add after the current pass
	marked  []*Entity // Entities marked for removal (deferred compaction)
	next    Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.sets {
		r.sets[i].byHandle = make(map[Handle]*Entity)
	}
	return r
}

// Spawn queues a new entity. It receives its handle immediately but is not
// visible to lookups until the next Flush.
func (r *Registry) Spawn(p Payload, impact *ImpactInfo) *Entity {
	r.next++
	e := &Entity{Handle: r.next, Payload: p, Impact: impact}
	r.pending = append(r.pending, e)
	return e
}

// Flush adds all queued entities and returns the ones that were materialized.
// Entities despawned while still pending are dropped.
func (r *Registry) Flush() []*Entity {
	if len(r.pending) == 0 {
		return nil
	}
	added := make([]*Entity, 0, len(r.pending))
	for _, e := range r.pending {
		if e.despawned {
			continue
		}
		set := &r.sets[e.Kind()]
		set.byHandle[e.Handle] = e
		set.order = append(set.order, e)
		added = append(added, e)
	}
	r.pending = r.pending[:0]
	return added
}

// Lookup returns the entity with handle h if it is a live entity of kind k.
// Entities marked for removal are still returned; callers check Despawned.
func (r *Registry) Lookup(k Kind, h Handle) (*Entity, bool) {
	if k <= KindUnknown || k >= kindCount {
		return nil, false
	}
	e, ok := r.sets[k].byHandle[h]
	return e, ok
}

// Get returns the live entity with handle h regardless of kind.
func (r *Registry) Get(h Handle) (*Entity, bool) {
	for _, k := range ClassificationOrder {
		if e, ok := r.sets[k].byHandle[h]; ok {
			return e, true
		}
	}
	return nil, false
}

// Queued returns an entity that was spawned but not yet flushed.
func (r *Registry) Queued(h Handle) (*Entity, bool) {
	for _, e := range r.pending {
		if e.Handle == h {
			return e, true
		}
	}
	return nil, false
}

// Despawn marks the entity for removal. It returns true only for the call
// that actually marked it, which makes destruction idempotent within a tick.
func (r *Registry) Despawn(h Handle) bool {
	if e, ok := r.Get(h); ok {
		if e.despawned {
			return false
		}
		e.despawned = true
		r.marked = append(r.marked, e)
		return true
	}
	for _, e := range r.pending {
		if e.Handle == h && !e.despawned {
			e.despawned = true
			return true
		}
	}
	return false
}

// Compact physically removes marked entities and returns them.
func (r *Registry) Compact() []*Entity {
	if len(r.marked) == 0 {
		return nil
	}
	removed := r.marked
	r.marked = nil

	var touched [kindCount]bool
	for _, e := range removed {
		k := e.Kind()
		delete(r.sets[k].byHandle, e.Handle)
		touched[k] = true
	}
	for k := range r.sets {
		if !touched[k] {
			continue
		}
		set := &r.sets[k]
		kept := set.order[:0] // reuse backing array
		for _, e := range set.order {
			if !e.despawned {
				kept = append(kept, e)
			}
		}
		clear(set.order[len(kept):])
		set.order = kept
	}
	return removed
}

// Count returns the number of live, unmarked entities of kind k.
func (r *Registry) Count(k Kind) int {
	if k <= KindUnknown || k >= kindCount {
		return 0
	}
	n := 0
	for _, e := range r.sets[k].order {
		if !e.despawned {
			n++
		}
	}
	return n
}

// Pending returns the number of queued, unmarked entities of kind k.
func (r *Registry) Pending(k Kind) int {
	n := 0
	for _, e := range r.pending {
		if !e.despawned && e.Kind() == k {
			n++
		}
	}
	return n
}

// WaveScoped counts asteroids and enemies that are alive or about to spawn.
func (r *Registry) WaveScoped() int {
	return r.Count(KindAsteroid) + r.Count(KindEnemy) +
		r.Pending(KindAsteroid) + r.Pending(KindEnemy)
}

// Each calls fn for every live, unmarked entity of kind k in spawn order.
// Iteration stops early if fn returns false.
func (r *Registry) Each(k Kind, fn func(e *Entity) bool) {
	if k <= KindUnknown || k >= kindCount {
		return
	}
	for _, e := range r.sets[k].order {
		if e.despawned {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Player returns the live player, if any. No player is an expected state
// (dead or respawning), not an error.
func (r *Registry) Player() (*Entity, *Player, bool) {
	var found *Entity
	r.Each(KindPlayer, func(e *Entity) bool {
		found = e
		return false
	})
	if found == nil {
		return nil, nil, false
	}
	return found, found.Payload.(*Player), true
}

// Len returns the number of live entities of every kind, marked or not.
func (r *Registry) Len() int {
	n := 0
	for k := range r.sets {
		n += len(r.sets[k].order)
	}
	return n
}
