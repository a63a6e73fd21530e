// Package cdt implements a two-dimensional constrained Delaunay
// triangulator with optional Ruppert refinement.
//
// Given a set of points, optional constraint edges (some of which may also
// mark hole or boundary loops), and optional hole seed points, Triangulate
// builds a mesh that is Delaunay away from constraints, contains every
// constraint edge, has holes and exterior regions removed according to the
// requested policy, and optionally satisfies a minimum-angle/maximum-area
// quality bound.
//
// The pipeline runs, in order, on one shared mesh: preprocess, validate,
// Delaunay construction, constrained-edge insertion, region removal, and
// refinement. It is single-threaded and synchronous; an instance owns its
// working buffers for the duration of one call and holds no state between
// calls.
package cdt
