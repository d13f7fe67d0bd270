// Package deps maps every object touched by a statement or block to an
// access mode. The resulting map is the scheduler's dependency-edge input:
// two statements conflict when they touch the same object and at least one
// access is a write, except that same-axis rotation accesses commute and may
// be freely reordered.
//
// The package also provides ReferenceRemapper, the structural rewrite that
// mapping and routing passes use to substitute object identities in place.
package deps
