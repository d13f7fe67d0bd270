package platform

import (
	"sort"

	"github.com/mmibrah2/OpenQL/internal/ir"
)

// operandTypesMatch reports whether a signature's operand-type list carries
// exactly the given data types, in order. Modes are not part of the match.
func operandTypesMatch(operands []ir.OperandType, types []ir.DataType) bool {
	if len(operands) != len(types) {
		return false
	}
	for i := range operands {
		if operands[i].Type != types[i] {
			return false
		}
	}
	return true
}

// isConstantOperand reports whether an expression may be bound as a template
// operand: literals and references with literal indices only.
func isConstantOperand(expr ir.Expression) bool {
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

// insertInstructionRoot inserts a generalized signature, keeping the catalog
// name-sorted. Same-name overloads with different operand types sit adjacent.
func (p *Platform) insertInstructionRoot(root *ir.InstructionType) {
	pos := sort.Search(len(p.instructions), func(i int) bool {
		return p.instructions[i].Name >= root.Name
	})
	p.instructions = append(p.instructions, nil)
	copy(p.instructions[pos+1:], p.instructions[pos:])
	p.instructions[pos] = root
}

// findInstructionRoot returns the generalized signature with the given name
// and exact operand-type list, or nil.
func (p *Platform) findInstructionRoot(name string, types []ir.DataType) *ir.InstructionType {
	pos := sort.Search(len(p.instructions), func(i int) bool {
		return p.instructions[i].Name >= name
	})
	for ; pos < len(p.instructions) && p.instructions[pos].Name == name; pos++ {
		if operandTypesMatch(p.instructions[pos].Operands, types) {
			return p.instructions[pos]
		}
	}
	return nil
}

// AddInstructionType registers an instruction signature. The given type must
// be fully generalized; template operands, if any, are bound through the
// optional trailing arguments, extending or creating the specialization
// subtree under the matching generalization. Template operands are constant
// operands preceding the explicit ones: each level of the tree binds exactly
// one more of them, and every node shares the root's name and explicit
// operand-type list.
//
// Re-registering an existing generalization is not an error: the incoming
// decomposition rules are merged into the existing node instead. The returned
// link is the most specialized node the call ended up at.
func (p *Platform) AddInstructionType(ityp *ir.InstructionType, templateOperands ...ir.Expression) (*ir.InstructionType, error) {
	if !identifierRE.MatchString(ityp.Name) {
		return nil, newNameError(ityp.Name, "invalid name for new instruction type: not a valid identifier")
	}
	if ityp.Generalization != nil || len(ityp.TemplateOperands) != 0 || len(ityp.Specializations) != 0 {
		return nil, newRegistrationError(ityp.Name, "instruction type must be registered fully generalized")
	}
	for _, val := range templateOperands {
		if !isConstantOperand(val) {
			return nil, newRegistrationError(ityp.Name, "template operand is not a constant")
		}
	}

	// Decomposition rules supplied together with template operands belong
	// to the specialization, not the root.
	decompositions := ityp.Decompositions
	if len(templateOperands) > 0 {
		ityp.Decompositions = nil
	}

	root := p.findInstructionRoot(ityp.Name, operandDataTypes(ityp.Operands))
	if root == nil {
		root = ityp
		p.insertInstructionRoot(root)
	} else if len(templateOperands) == 0 {
		root.Decompositions = append(root.Decompositions, decompositions...)
		return root, nil
	}

	cur := root
	for _, val := range templateOperands {
		var child *ir.InstructionType
		for _, spec := range cur.Specializations {
			if ir.EqualExpressions(spec.TemplateOperands[len(spec.TemplateOperands)-1], val) {
				child = spec
				break
			}
		}
		if child == nil {
			bound := ir.CloneExpressions(cur.TemplateOperands)
			bound = append(bound, ir.CloneExpression(val))
			child = &ir.InstructionType{
				Name:             root.Name,
				Operands:         root.Operands,
				TemplateOperands: bound,
				Quantum:          root.Quantum,
				Duration:         root.Duration,
				Generalization:   cur,
			}
			cur.Specializations = append(cur.Specializations, child)
		}
		cur = child
	}
	if cur != root {
		cur.Decompositions = append(cur.Decompositions, decompositions...)
	}
	return cur, nil
}

// AddDecompositionRule registers a decomposition rule, creating the
// instruction (specialization) it attaches to if it did not exist yet. When
// the signature already exists only its decomposition-rule list is extended.
func (p *Platform) AddDecompositionRule(ityp *ir.InstructionType, templateOperands []ir.Expression) (*ir.InstructionType, error) {
	return p.AddInstructionType(ityp, templateOperands...)
}

// FindInstructionType returns the generalized instruction signature matching
// the name and exact operand-type list, or nil when there is none.
//
// With generateOverloadIfNeeded set, a missing signature is synthesized by
// cloning the first signature that matches by name alone, re-typed to the
// requested operand list, and registered. This is a legacy-ingestion shim:
// it makes a nominal lookup mutate the registry.
func (p *Platform) FindInstructionType(name string, types []ir.DataType, generateOverloadIfNeeded bool) *ir.InstructionType {
	if root := p.findInstructionRoot(name, types); root != nil {
		return root
	}
	if !generateOverloadIfNeeded {
		return nil
	}
	return p.generateOverload(name, types)
}

// generateOverload synthesizes and registers an overload of the first
// signature matching name alone. Returns nil when the name is unknown.
func (p *Platform) generateOverload(name string, types []ir.DataType) *ir.InstructionType {
	pos := sort.Search(len(p.instructions), func(i int) bool {
		return p.instructions[i].Name >= name
	})
	if pos >= len(p.instructions) || p.instructions[pos].Name != name {
		return nil
	}
	donor := p.instructions[pos]
	operands := make([]ir.OperandType, len(types))
	for i, typ := range types {
		mode := ir.ModeRead
		if !typ.Classical() {
			mode = ir.ModeWrite
		}
		operands[i] = ir.OperandType{Mode: mode, Type: typ}
	}
	// The donor's decomposition rules cannot type-check against the new
	// operand list, so the overload starts without any.
	overload := &ir.InstructionType{
		Name:     name,
		Operands: operands,
		Quantum:  donor.Quantum,
		Duration: donor.Duration,
	}
	p.insertInstructionRoot(overload)
	return overload
}

// InstructionTypes returns the name-sorted catalog of generalized instruction
// signatures. Callers must not modify the returned slice.
func (p *Platform) InstructionTypes() []*ir.InstructionType { return p.instructions }

// AddFunctionType registers a function signature. Names must be valid
// identifiers or operator spellings ("operator+"); two functions may share a
// name only when their operand-type lists differ.
func (p *Platform) AddFunctionType(ftyp *ir.FunctionType) (*ir.FunctionType, error) {
	if !identifierRE.MatchString(ftyp.Name) && !operatorNameRE.MatchString(ftyp.Name) {
		return nil, newNameError(ftyp.Name, "invalid name for new function type: not a valid identifier")
	}
	if ftyp.ReturnType == nil {
		return nil, newRegistrationError(ftyp.Name, "function type has no return type")
	}
	if p.FindFunctionType(ftyp.Name, operandDataTypes(ftyp.Operands)) != nil {
		return nil, newNameError(ftyp.Name, "invalid name for new function type: signature already in use")
	}
	pos := sort.Search(len(p.functions), func(i int) bool {
		return p.functions[i].Name >= ftyp.Name
	})
	p.functions = append(p.functions, nil)
	copy(p.functions[pos+1:], p.functions[pos:])
	p.functions[pos] = ftyp
	return ftyp, nil
}

// FindFunctionType returns the function signature with the given name and
// exact operand-type list, or nil. There is no overload synthesis for
// functions.
func (p *Platform) FindFunctionType(name string, types []ir.DataType) *ir.FunctionType {
	pos := sort.Search(len(p.functions), func(i int) bool {
		return p.functions[i].Name >= name
	})
	for ; pos < len(p.functions) && p.functions[pos].Name == name; pos++ {
		if operandTypesMatch(p.functions[pos].Operands, types) {
			return p.functions[pos]
		}
	}
	return nil
}

// Functions returns the name-sorted catalog of function signatures. Callers
// must not modify the returned slice.
func (p *Platform) Functions() []*ir.FunctionType { return p.functions }

func operandDataTypes(operands []ir.OperandType) []ir.DataType {
	types := make([]ir.DataType, len(operands))
	for i, op := range operands {
		types[i] = op.Type
	}
	return types
}
