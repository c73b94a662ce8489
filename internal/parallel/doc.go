// Package parallel runs row bands of a frame on a fixed set of goroutines.
//
// A frame is split into contiguous row bands (SplitRows), each band is
// handed to the pool as one task, and the caller blocks until every band
// is done. Tasks must only write rows inside their own band.
package parallel
