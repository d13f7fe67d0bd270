// Package platform implements the type registry of a target platform: the
// ordered catalogs of data types, physical objects, instruction signatures,
// and function signatures that builders, analysis, and printers operate
// against.
//
// A Platform is populated once per compilation run and threaded explicitly
// through every call; it is never a global. Registration keeps the catalogs
// name-sorted and duplicate-free, instruction registration maintains the
// specialization tree, and entries are never removed once registered.
//
// The package also loads platform descriptions from YAML or JSON documents,
// validated against an embedded CUE schema before any registry mutation.
package platform
