package core

import "sync/atomic"

// QueryStats counts scene queries. It is safe for concurrent use and is
// owned by whoever renders, never by the scene itself.
type QueryStats struct {
	rays       atomic.Int64
	shadowRays atomic.Int64
}

// AddRay records one nearest-hit query
func (s *QueryStats) AddRay() {
	s.rays.Add(1)
}

// AddShadowRay records one occlusion probe
func (s *QueryStats) AddShadowRay() {
	s.shadowRays.Add(1)
}

// Rays returns the number of nearest-hit queries recorded so far
func (s *QueryStats) Rays() int64 {
	return s.rays.Load()
}

// ShadowRays returns the number of occlusion probes recorded so far
func (s *QueryStats) ShadowRays() int64 {
	return s.shadowRays.Load()
}
