package build

import (
	"fmt"

	"github.com/mmibrah2/OpenQL/internal/ir"
	"github.com/mmibrah2/OpenQL/internal/platform"
)

// MakeInstruction builds an instruction node from a name and operand list.
//
// The names "set", "wait", and "barrier" are reserved and build their fixed
// shapes; any other name resolves via the registry and prefers the most
// specialized signature whose template operands match the leading operand
// values. A nil condition means unconditional: the literal true of the
// platform's default bit type is generated. Wait and barrier never take a
// condition.
//
// With returnEmptyOnFailure set, an unresolvable name returns (nil, nil)
// instead of an UnresolvedInstructionError; all other failures still error.
func MakeInstruction(
	p *platform.Platform,
	name string,
	operands []ir.Expression,
	condition ir.Expression,
	returnEmptyOnFailure bool,
	generateOverloadIfNeeded bool,
) (ir.Instruction, error) {
	switch name {
	case "set":
		if len(operands) != 2 {
			return nil, newTypeMismatchError(name, fmt.Sprintf("set requires exactly two operands, got %d", len(operands)))
		}
		return MakeSetInstruction(p, operands[0], operands[1], condition)
	case "wait":
		if len(operands) == 0 {
			return nil, newTypeMismatchError(name, "wait requires a duration operand")
		}
		dur, ok := operands[0].(*ir.IntLiteral)
		if !ok {
			return nil, newTypeMismatchError(name, "wait duration must be an integer literal")
		}
		if dur.Value < 0 {
			return nil, newTypeMismatchError(name, fmt.Sprintf("wait duration must be non-negative, got %d", dur.Value))
		}
		return makeWait(name, uint64(dur.Value), operands[1:], condition)
	case "barrier":
		return makeWait(name, 0, operands, condition)
	}

	types := make([]ir.DataType, len(operands))
	for i, op := range operands {
		types[i] = ir.TypeOf(op)
	}

	// Leading constant operands may be template operands of a specialized
	// signature rather than explicit operands, so retry the lookup with
	// them stripped until something matches and binds. Overload synthesis
	// is a last resort, tried only when no registered signature can bind:
	// it must not preempt a registered specialization, and it mutates the
	// registry.
	var ityp *ir.InstructionType
	skip := 0
	for {
		if ityp = p.FindInstructionType(name, types[skip:], false); ityp != nil {
			break
		}
		if skip >= len(operands) || !isConstant(operands[skip]) {
			break
		}
		skip++
	}
	var insn *ir.CustomInstruction
	if ityp != nil {
		var err error
		if insn, err = bindCustom(p, ityp, operands, skip, condition); err != nil {
			return nil, err
		}
	}
	if insn == nil && generateOverloadIfNeeded {
		if overload := p.FindInstructionType(name, types, true); overload != nil {
			var err error
			if insn, err = bindCustom(p, overload, operands, 0, condition); err != nil {
				return nil, err
			}
		}
	}
	if insn == nil {
		if returnEmptyOnFailure {
			return nil, nil
		}
		return nil, &Error{
			Code:    ErrCodeUnresolvedInstruction,
			Message: fmt.Sprintf("no instruction signature matches %s%s", name, typeNames(types)),
			Name:    name,
		}
	}
	return insn, nil
}

// bindCustom builds a custom instruction against a candidate signature whose
// explicit operand types match operands[skip:], then repoints it to the
// specialization binding the leading constants. Returns (nil, nil) when the
// leading constants do not bind to any registered specialization.
func bindCustom(
	p *platform.Platform,
	ityp *ir.InstructionType,
	operands []ir.Expression,
	skip int,
	condition ir.Expression,
) (*ir.CustomInstruction, error) {
	for i, slot := range ityp.Operands {
		if slot.Mode == ir.ModeRead || slot.Mode == ir.ModeLiteral {
			continue
		}
		if !IsAssignableOrQubit(operands[skip+i]) {
			return nil, newTypeMismatchError(ityp.Name, fmt.Sprintf("operand %d must be a reference for access mode %s", skip+i, slot.Mode))
		}
	}
	insn := &ir.CustomInstruction{
		Type:      ityp,
		Operands:  operands,
		Condition: defaultCondition(p, condition),
	}
	SpecializeInstruction(insn)
	if len(insn.Operands) != len(insn.Type.Operands) {
		return nil, nil
	}
	return insn, nil
}

// isConstant reports whether an expression can match a template operand.
func isConstant(expr ir.Expression) bool {
	switch e := expr.(type) {
	case *ir.IntLiteral, *ir.BitLiteral, *ir.RealLiteral:
		return true
	case *ir.Reference:
		for _, idx := range e.Indices {
			if _, ok := idx.(*ir.IntLiteral); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MakeSetInstruction builds a set instruction. The LHS must be an assignable
// classical reference and the RHS must have exactly the same data type.
func MakeSetInstruction(p *platform.Platform, lhs, rhs, condition ir.Expression) (*ir.SetInstruction, error) {
	ref, ok := lhs.(*ir.Reference)
	if !ok {
		return nil, newTypeMismatchError("set", "set LHS must be a reference")
	}
	if ref.Type == nil || !ref.Type.Classical() {
		return nil, newTypeMismatchError("set", "set LHS must have a classical data type")
	}
	if rhsType := ir.TypeOf(rhs); rhsType != ref.Type {
		return nil, newTypeMismatchError("set", fmt.Sprintf(
			"set LHS type %s and RHS type %s differ", describeType(ref.Type), describeType(rhsType)))
	}
	return &ir.SetInstruction{LHS: ref, RHS: rhs, Condition: defaultCondition(p, condition)}, nil
}

func makeWait(name string, duration uint64, waited []ir.Expression, condition ir.Expression) (*ir.WaitInstruction, error) {
	if condition != nil {
		return nil, newInvalidConditionError(name)
	}
	insn := &ir.WaitInstruction{Duration: duration}
	for i, op := range waited {
		ref, ok := op.(*ir.Reference)
		if !ok {
			return nil, newTypeMismatchError(name, fmt.Sprintf("waited-on operand %d must be a reference", i))
		}
		insn.Objects = append(insn.Objects, ref)
	}
	return insn, nil
}

// MakeFunctionCall builds a call node. Resolution is exact-match only; there
// is no overload synthesis for functions.
func MakeFunctionCall(p *platform.Platform, name string, operands []ir.Expression) (*ir.FunctionCall, error) {
	types := make([]ir.DataType, len(operands))
	for i, op := range operands {
		types[i] = ir.TypeOf(op)
	}
	ftyp := p.FindFunctionType(name, types)
	if ftyp == nil {
		return nil, &Error{
			Code:    ErrCodeUnresolvedFunction,
			Message: fmt.Sprintf("no function signature matches %s%s", name, typeNames(types)),
			Name:    name,
		}
	}
	return &ir.FunctionCall{Function: ftyp, Operands: operands}, nil
}

// SpecializeInstruction repoints a custom instruction to the most specialized
// signature whose template operands match the instruction's leading operand
// values, moving those operands into the signature binding. No-op for other
// instructions or when no child matches.
func SpecializeInstruction(insn ir.Instruction) {
	custom, ok := insn.(*ir.CustomInstruction)
	if !ok {
		return
	}
	for len(custom.Operands) > len(custom.Type.Operands) {
		var match *ir.InstructionType
		for _, spec := range custom.Type.Specializations {
			bound := spec.TemplateOperands[len(spec.TemplateOperands)-1]
			if ir.EqualExpressions(bound, custom.Operands[0]) {
				match = spec
				break
			}
		}
		if match == nil {
			return
		}
		custom.Type = match
		custom.Operands = custom.Operands[1:]
	}
}

// GeneralizeInstruction repoints a custom instruction to the root of its
// specialization tree, moving the bound template operand values back into the
// instruction's explicit operand list. No-op for other instructions or when
// already fully generalized.
func GeneralizeInstruction(insn ir.Instruction) {
	custom, ok := insn.(*ir.CustomInstruction)
	if !ok || custom.Type.Generalization == nil {
		return
	}
	operands := ir.CloneExpressions(custom.Type.TemplateOperands)
	custom.Operands = append(operands, custom.Operands...)
	custom.Type = GetGeneralization(custom.Type)
}

// GetGeneralization returns the root of an instruction type's specialization
// tree: the signature with zero bound template operands.
func GetGeneralization(ityp *ir.InstructionType) *ir.InstructionType {
	for ityp.Generalization != nil {
		ityp = ityp.Generalization
	}
	return ityp
}

// GetOperands returns the uniform operand view of an instruction: template
// operands then explicit operands for custom instructions, {LHS, RHS} for
// set, nothing for the rest. The condition is never included.
func GetOperands(insn ir.Instruction) []ir.Expression {
	switch s := insn.(type) {
	case *ir.CustomInstruction:
		operands := make([]ir.Expression, 0, len(s.Type.TemplateOperands)+len(s.Operands))
		operands = append(operands, s.Type.TemplateOperands...)
		return append(operands, s.Operands...)
	case *ir.SetInstruction:
		return []ir.Expression{s.LHS, s.RHS}
	default:
		return nil
	}
}

// InstructionDuration returns the duration of an instruction in quantum
// cycles; zero for non-quantum instructions.
func InstructionDuration(insn ir.Instruction) uint64 {
	switch s := insn.(type) {
	case *ir.CustomInstruction:
		if s.Type.Quantum {
			return s.Type.Duration
		}
		return 0
	case *ir.WaitInstruction:
		return s.Duration
	default:
		return 0
	}
}

// BlockDuration returns the duration of a block in quantum cycles based on
// the cycle numbers the scheduler assigned. Structured control-flow
// sub-blocks count as zero cycles.
func BlockDuration(block *ir.Block) uint64 {
	first := int64(0)
	last := int64(0)
	seen := false
	for _, stmt := range block.Statements {
		insn, ok := stmt.(ir.Instruction)
		if !ok {
			continue
		}
		cycle := instructionCycle(insn)
		end := cycle + int64(InstructionDuration(insn))
		if !seen || cycle < first {
			first = cycle
		}
		if !seen || end > last {
			last = end
		}
		seen = true
	}
	if !seen || last <= first {
		return 0
	}
	return uint64(last - first)
}

// QubitsInvolved returns the number of qubits in an instruction's operand
// list; zero classifies the instruction as non-quantum for scheduling.
func QubitsInvolved(insn ir.Instruction) int {
	count := 0
	if wait, ok := insn.(*ir.WaitInstruction); ok {
		for _, ref := range wait.Objects {
			if isQubit(ref.Type) {
				count++
			}
		}
		return count
	}
	for _, op := range GetOperands(insn) {
		if isQubit(ir.TypeOf(op)) {
			count++
		}
	}
	return count
}

func isQubit(typ ir.DataType) bool {
	_, ok := typ.(*ir.QubitType)
	return ok
}

func instructionCycle(insn ir.Instruction) int64 {
	switch s := insn.(type) {
	case *ir.CustomInstruction:
		return s.Cycle
	case *ir.SetInstruction:
		return s.Cycle
	case *ir.WaitInstruction:
		return s.Cycle
	case *ir.GotoInstruction:
		return s.Cycle
	case *ir.DummyInstruction:
		return s.Cycle
	default:
		return 0
	}
}

func defaultCondition(p *platform.Platform, condition ir.Expression) ir.Expression {
	if condition != nil {
		return condition
	}
	return &ir.BitLiteral{Value: true, Type: p.DefaultBitType}
}

func describeType(typ ir.DataType) string {
	if typ == nil {
		return "<none>"
	}
	return typ.TypeName()
}

func typeNames(types []ir.DataType) string {
	s := "("
	for i, typ := range types {
		if i > 0 {
			s += ", "
		}
		s += describeType(typ)
	}
	return s + ")"
}
