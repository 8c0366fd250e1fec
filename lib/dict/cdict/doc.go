// Package cdict implements the cache-limited dictionary, for datasets too
// large to mirror fully in memory. The dictionary starts empty and fills a
// bounded concurrent cache from the engine as keys are read.
//
// Read path: a Get first checks the cache; a hit returns immediately with no
// disk access and no counter mutation. On a miss the engine is consulted; if
// the key exists on disk, the pair is inserted into the cache and the fill
// counter is incremented. A key absent from both cache and disk is reported
// as absent with no cache mutation.
//
// Eviction: the fill counter counts cache-fill operations, not distinct
// cached keys (repeated misses for the same key each count). When a fill
// finds the counter at or over the configured limit, the entire cache is
// cleared and the counter reset before the new pair is inserted. This bulk
// eviction trades eviction precision for zero per-entry recency bookkeeping;
// it is safe because the cache is a performance optimization, never a source
// of truth. The engine's table stays authoritative at all times and the
// cache is always a subset of it.
//
// ToList and Len report only the current cache contents, not the full
// dataset; callers must not treat ToList as a full scan.
package cdict
