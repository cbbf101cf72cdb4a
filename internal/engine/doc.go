// Package engine implements the data-parallel execution core of the Ember
// compute framework.
//
// A launch runs a kernel once per execution context ("lane"), arranged
// lane-in-block-in-grid. Lanes of one block share a barrier and can exchange
// values through scratch memory; blocks make no progress guarantees relative
// to each other. Launches are submitted to streams, in-order asynchronous
// task queues, so work on distinct streams overlaps while work on one stream
// is serialized.
//
// Host objects that need one logical copy per lane (reduction accumulators)
// implement Capturable; the engine invokes their lifecycle hooks at launch
// start, per finished replica, and at launch end.
package engine
