// Package ir defines the intermediate representation for quantum programs.
//
// This package contains the node types only: data types, objects,
// expressions, statements, and instruction/function signatures. All other
// internal packages import ir; ir imports nothing internal. This ensures IR
// remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Objects are referenced by registry-assigned ObjectID arena indices,
//     never by pointer; the platform registry owns the objects.
//   - Expression, Statement, and DataType are sealed interfaces - only the
//     variant structs in this package implement them.
//   - Instruction types form a specialization tree: a child binds exactly
//     one more template operand than its parent and shares the root's name
//     and explicit operand-type list.
package ir
