// Package compress re-encodes a raster image either at a fixed quality or at
// the quality a binary search picks to approximate a target size in KB.
//
// # Search
//
// Target-size mode searches quality in [0.1, 1.0]. Each step encodes at the
// midpoint and stops as soon as the result is within 5 KB of the target or
// the interval is narrower than 0.05. The search is satisficing: it returns
// the first encoding inside the band, not the closest one. The interval
// halves on every step, so at most six encodes are made even for encoders
// whose size is not monotonic in quality.
//
// # Encoders
//
// The raster encode itself is supplied through the Encoder interface; see
// package imaging for the implementation used by the server. Encoder
// failures are returned as *FailedError and are never retried.
package compress
