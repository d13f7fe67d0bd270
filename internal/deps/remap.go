package deps

import "github.com/mmibrah2/OpenQL/internal/ir"

// ReferenceRemapper rewrites object identities across a statement or block
// tree, for mapping and routing passes that reassign objects. Every
// reference whose object appears in the table has its object replaced in
// place; index paths are untouched.
//
// The rewrite substitutes whole objects only: it cannot move a sub-element
// of one object into an element of a different object. Callers should
// generalize custom instructions first and re-specialize afterwards, since
// registry-owned template operands are deliberately not rewritten.
type ReferenceRemapper struct {
	// Map is the old-object to new-object substitution table.
	Map map[ir.ObjectID]ir.ObjectID
}

// NewReferenceRemapper constructs a remapper over a substitution table.
func NewReferenceRemapper(table map[ir.ObjectID]ir.ObjectID) *ReferenceRemapper {
	if table == nil {
		table = make(map[ir.ObjectID]ir.ObjectID)
	}
	return &ReferenceRemapper{Map: table}
}

// RemapExpression rewrites every reference in an expression tree.
func (r *ReferenceRemapper) RemapExpression(expr ir.Expression) {
	switch e := expr.(type) {
	case *ir.Reference:
		if target, ok := r.Map[e.Object]; ok {
			e.Object = target
		}
		for _, idx := range e.Indices {
			r.RemapExpression(idx)
		}
	case *ir.FunctionCall:
		for _, op := range e.Operands {
			r.RemapExpression(op)
		}
	}
}

// RemapStatement rewrites every reference in a statement, recursing into
// structured sub-blocks.
func (r *ReferenceRemapper) RemapStatement(stmt ir.Statement) {
	switch s := stmt.(type) {
	case *ir.CustomInstruction:
		for _, op := range s.Operands {
			r.RemapExpression(op)
		}
		r.RemapExpression(s.Condition)
	case *ir.SetInstruction:
		r.RemapExpression(s.LHS)
		r.RemapExpression(s.RHS)
		r.RemapExpression(s.Condition)
	case *ir.WaitInstruction:
		for _, ref := range s.Objects {
			r.RemapExpression(ref)
		}
	case *ir.GotoInstruction:
		r.RemapExpression(s.Condition)
	case *ir.IfElse:
		for _, branch := range s.Branches {
			r.RemapExpression(branch.Condition)
			r.RemapBlock(branch.Body)
		}
		r.RemapBlock(s.Otherwise)
	case *ir.ForLoop:
		if s.Initialize != nil {
			r.RemapStatement(s.Initialize)
		}
		r.RemapExpression(s.Condition)
		if s.Update != nil {
			r.RemapStatement(s.Update)
		}
		r.RemapBlock(s.Body)
	}
}

// RemapBlock rewrites every reference in a block.
func (r *ReferenceRemapper) RemapBlock(block *ir.Block) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		r.RemapStatement(stmt)
	}
}
