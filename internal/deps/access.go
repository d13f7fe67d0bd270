package deps

import (
	"sort"

	"github.com/mmibrah2/OpenQL/internal/build"
	"github.com/mmibrah2/OpenQL/internal/ir"
	"github.com/mmibrah2/OpenQL/internal/platform"
)

// Access pairs a hazard key with its merged access mode.
type Access struct {
	Reference ir.UniqueReference
	Mode      ir.AccessMode
}

// ObjectAccesses gathers the object accesses of expressions, statements, and
// blocks into one map per analysis scope. Repeated accesses to the same
// object merge: identical modes stay, mismatches escalate to write unless
// the same-axis commutation relaxation applies.
//
// The null-object entry (full barriers, gotos) is recorded like any other;
// treating it as conflicting with everything is the scheduler's job.
type ObjectAccesses struct {
	// DisableSingleQubitCommutation turns off X/Y/Z commutation for
	// instructions operating on a single qubit. Affects subsequent Add*
	// calls only.
	DisableSingleQubitCommutation bool

	// DisableMultiQubitCommutation turns off X/Y/Z commutation for
	// instructions operating on multiple qubits. Affects subsequent Add*
	// calls only.
	DisableMultiQubitCommutation bool

	platform *platform.Platform
	accesses map[ir.UniqueReference]ir.AccessMode
}

// New constructs an access gatherer against the given platform.
func New(p *platform.Platform) *ObjectAccesses {
	return &ObjectAccesses{
		platform: p,
		accesses: make(map[ir.UniqueReference]ir.AccessMode),
	}
}

// Get returns the gathered access map. Callers must not modify it.
func (a *ObjectAccesses) Get() map[ir.UniqueReference]ir.AccessMode {
	return a.accesses
}

// Sorted returns the gathered accesses in deterministic order.
func (a *ObjectAccesses) Sorted() []Access {
	out := make([]Access, 0, len(a.accesses))
	for ref, mode := range a.accesses {
		out = append(out, Access{Reference: ref, Mode: mode})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Reference.Less(out[j].Reference)
	})
	return out
}

// Reset clears the map so the gatherer can be reused for the next scope.
func (a *ObjectAccesses) Reset() {
	clear(a.accesses)
}

// AddAccess records a single object access.
//
// Literal mode carries no hazard and is upgraded to read. Measure mode on a
// qubit expands into write accesses on the qubit and on its implicit
// measurement bit. When the key is already present the modes combine:
// identical modes stay, anything else escalates to write. Overlapping but
// unequal index paths on the same object escalate conservatively to write on
// both entries.
func (a *ObjectAccesses) AddAccess(mode ir.AccessMode, ref ir.UniqueReference) {
	switch {
	case mode == ir.ModeLiteral:
		mode = ir.ModeRead
	case mode == ir.ModeMeasure:
		if _, ok := ref.Type.(*ir.QubitType); ok && a.platform.ImplicitBitType != nil {
			bitRef := ref
			bitRef.Type = a.platform.ImplicitBitType
			a.AddAccess(ir.ModeWrite, ref)
			a.AddAccess(ir.ModeWrite, bitRef)
			return
		}
		mode = ir.ModeWrite
	}

	if existing, ok := a.accesses[ref]; ok {
		if existing != mode {
			a.accesses[ref] = ir.ModeWrite
		}
		return
	}
	a.accesses[ref] = mode
	for other, otherMode := range a.accesses {
		if ref.Overlaps(other) {
			// Distinct sub-ranges of one object that may alias:
			// no contract upstream, so force a write/write
			// conflict on both.
			if otherMode != ir.ModeWrite {
				a.accesses[other] = ir.ModeWrite
			}
			a.accesses[ref] = ir.ModeWrite
		}
	}
}

// AddExpression records whatever a complete expression touches. References
// contribute an access at the given mode; calls are pure and contribute read
// accesses on every sub-operand; literals contribute nothing.
func (a *ObjectAccesses) AddExpression(mode ir.AccessMode, expr ir.Expression) {
	switch e := expr.(type) {
	case *ir.Reference:
		a.AddAccess(mode, ir.NewUniqueReference(e))
		for _, idx := range e.Indices {
			a.AddExpression(ir.ModeRead, idx)
		}
	case *ir.FunctionCall:
		for _, op := range e.Operands {
			a.AddExpression(ir.ModeRead, op)
		}
	}
}

// AddOperands records the operand accesses of an instruction or function
// against its prototype, mapping each operand's declared access mode to the
// matching AddExpression call. Commuting modes fall back to write when
// commutation is disabled for the instruction's qubit arity class.
func (a *ObjectAccesses) AddOperands(prototype []ir.OperandType, operands []ir.Expression) {
	qubits := 0
	for _, slot := range prototype {
		if !slot.Type.Classical() {
			qubits++
		}
	}
	commutationDisabled := (qubits == 1 && a.DisableSingleQubitCommutation) ||
		(qubits > 1 && a.DisableMultiQubitCommutation)

	for i, op := range operands {
		if i >= len(prototype) {
			break
		}
		mode := prototype[i].Mode
		if mode.Commuting() && commutationDisabled {
			mode = ir.ModeWrite
		}
		a.AddExpression(mode, op)
	}
}

// AddStatement records every access a statement makes, recursing into
// structured sub-blocks. A statement's condition always contributes a read.
func (a *ObjectAccesses) AddStatement(stmt ir.Statement) {
	switch s := stmt.(type) {
	case *ir.CustomInstruction:
		// The uniform operand view leads with the bound template
		// operands, so extend the explicit prototype accordingly:
		// bound references are still acted upon, bound literals are
		// hazard-free constants.
		explicit := build.GetGeneralization(s.Type).Operands
		templates := s.Type.TemplateOperands
		prototype := make([]ir.OperandType, 0, len(templates)+len(explicit))
		for _, op := range templates {
			mode := ir.ModeLiteral
			if _, ok := op.(*ir.Reference); ok {
				mode = ir.ModeWrite
			}
			prototype = append(prototype, ir.OperandType{Mode: mode, Type: ir.TypeOf(op)})
		}
		prototype = append(prototype, explicit...)
		a.AddOperands(prototype, build.GetOperands(s))
		a.AddExpression(ir.ModeRead, s.Condition)
	case *ir.SetInstruction:
		a.AddExpression(ir.ModeWrite, s.LHS)
		a.AddExpression(ir.ModeRead, s.RHS)
		a.AddExpression(ir.ModeRead, s.Condition)
	case *ir.WaitInstruction:
		if len(s.Objects) == 0 {
			a.AddAccess(ir.ModeWrite, ir.NullUniqueReference())
			return
		}
		for _, ref := range s.Objects {
			a.AddExpression(ir.ModeWrite, ref)
		}
	case *ir.GotoInstruction:
		a.AddAccess(ir.ModeWrite, ir.NullUniqueReference())
		a.AddExpression(ir.ModeRead, s.Condition)
	case *ir.DummyInstruction:
		// Touches nothing.
	case *ir.IfElse:
		for _, branch := range s.Branches {
			a.AddExpression(ir.ModeRead, branch.Condition)
			a.AddBlock(branch.Body)
		}
		if s.Otherwise != nil {
			a.AddBlock(s.Otherwise)
		}
	case *ir.ForLoop:
		if s.Initialize != nil {
			a.AddStatement(s.Initialize)
		}
		a.AddExpression(ir.ModeRead, s.Condition)
		if s.Update != nil {
			a.AddStatement(s.Update)
		}
		a.AddBlock(s.Body)
	case *ir.BreakStatement, *ir.ContinueStatement:
		// Control transfer conflicts with everything, like goto.
		a.AddAccess(ir.ModeWrite, ir.NullUniqueReference())
	}
}

// AddBlock records every access a whole (sub)block makes. Only the union of
// accesses matters; internal ordering is the scheduler's concern.
func (a *ObjectAccesses) AddBlock(block *ir.Block) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		a.AddStatement(stmt)
	}
}
