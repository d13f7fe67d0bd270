// Package describe renders one-line descriptions of IR nodes for
// diagnostics and printers. Expression rendering uses an operator-metadata
// table keyed by function name and arity to emit the minimal set of
// parentheses that preserves evaluation order.
package describe
