// Package build constructs IR nodes consistent with a platform registry:
// literal, reference, and call expressions, plus instructions resolved
// through name and operand types.
//
// MakeInstruction reserves the names "set", "wait", and "barrier" for their
// fixed shapes; any other name resolves against the registry's instruction
// catalog and is then repointed to the most specialized signature whose
// template operands match. SpecializeInstruction and GeneralizeInstruction
// move instructions up and down their specialization tree, which mapping
// passes use to edit operands safely.
package build
