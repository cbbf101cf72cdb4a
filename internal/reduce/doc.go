// Package reduce implements Ember's parallel-reduction core: combining one
// scalar (sum, min, max, or min/max with location) across all execution
// contexts of a launch into exactly one value, race-free, with support for
// repeated, overlapping and asynchronous launches on the same accumulator.
//
// The pipeline follows the launch hierarchy. Each replica folds its
// contributions into a private arena slot. When a replica finishes, its
// block combines the arena slots with a butterfly exchange (blockReduce),
// then the blocks combine through one of two grid protocols: a staged
// per-block slot array, or a single slot folded with atomic operations. The
// protocol elects exactly one context "last"; that context writes the final
// value into a pinned tally slot reserved for the launch. Host code reads
// the accumulator by draining the tally, which synchronizes the streams
// involved and folds every slot.
package reduce
