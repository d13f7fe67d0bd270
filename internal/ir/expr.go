package ir

// Expression is a sealed interface over expression nodes. Only IntLiteral,
// BitLiteral, RealLiteral, Reference, and FunctionCall implement it.
// Expressions are owned by their containing node.
type Expression interface {
	expression() // Sealed - only these types implement it
}

// IntLiteral is a constant integer value of some registered integer type.
type IntLiteral struct {
	Value int64
	Type  DataType
}

func (*IntLiteral) expression() {}

// BitLiteral is a constant bit value. The literal true of the default bit
// type doubles as the unconditional instruction condition.
type BitLiteral struct {
	Value bool
	Type  DataType
}

func (*BitLiteral) expression() {}

// RealLiteral is a constant real value, typically a rotation angle.
type RealLiteral struct {
	Value float64
	Type  DataType
}

func (*RealLiteral) expression() {}

// Reference addresses (an element of) a registry-owned object. The data type
// distinguishes views of the same storage: a qubit register element and its
// implicit measurement bit share an object and index path but differ in type.
type Reference struct {
	Object  ObjectID
	Type    DataType
	Indices []Expression
}

func (*Reference) expression() {}

// IsNull reports whether the reference targets the null object.
func (r *Reference) IsNull() bool { return r.Object == NullObject }

// FunctionCall applies a registered function to operand expressions. Calls
// are pure: they read their operands and touch nothing else.
type FunctionCall struct {
	Function *FunctionType
	Operands []Expression
}

func (*FunctionCall) expression() {}

// TypeOf returns the data type of, or returned by, an expression. Returns nil
// for a nil expression.
func TypeOf(expr Expression) DataType {
	switch e := expr.(type) {
	case *IntLiteral:
		return e.Type
	case *BitLiteral:
		return e.Type
	case *RealLiteral:
		return e.Type
	case *Reference:
		return e.Type
	case *FunctionCall:
		return e.Function.ReturnType
	default:
		return nil
	}
}

// EqualExpressions reports structural value equality of two expression trees.
// Literals compare by value and type link, references by object identity,
// type link, and index path.
func EqualExpressions(a, b Expression) bool {
	switch x := a.(type) {
	case *IntLiteral:
		y, ok := b.(*IntLiteral)
		return ok && x.Value == y.Value && x.Type == y.Type
	case *BitLiteral:
		y, ok := b.(*BitLiteral)
		return ok && x.Value == y.Value && x.Type == y.Type
	case *RealLiteral:
		y, ok := b.(*RealLiteral)
		return ok && x.Value == y.Value && x.Type == y.Type
	case *Reference:
		y, ok := b.(*Reference)
		if !ok || x.Object != y.Object || x.Type != y.Type || len(x.Indices) != len(y.Indices) {
			return false
		}
		for i := range x.Indices {
			if !EqualExpressions(x.Indices[i], y.Indices[i]) {
				return false
			}
		}
		return true
	case *FunctionCall:
		y, ok := b.(*FunctionCall)
		if !ok || x.Function != y.Function || len(x.Operands) != len(y.Operands) {
			return false
		}
		for i := range x.Operands {
			if !EqualExpressions(x.Operands[i], y.Operands[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		return false
	}
}

// IsTrueLiteral reports whether an expression is the literal true, the
// spelling of an unconditional instruction condition.
func IsTrueLiteral(expr Expression) bool {
	lit, ok := expr.(*BitLiteral)
	return ok && lit.Value
}

// CloneExpression deep-copies an expression tree. Type and signature links
// are shared: the registry owns those.
func CloneExpression(expr Expression) Expression {
	switch e := expr.(type) {
	case *IntLiteral:
		c := *e
		return &c
	case *BitLiteral:
		c := *e
		return &c
	case *RealLiteral:
		c := *e
		return &c
	case *Reference:
		c := &Reference{Object: e.Object, Type: e.Type}
		for _, idx := range e.Indices {
			c.Indices = append(c.Indices, CloneExpression(idx))
		}
		return c
	case *FunctionCall:
		c := &FunctionCall{Function: e.Function}
		for _, op := range e.Operands {
			c.Operands = append(c.Operands, CloneExpression(op))
		}
		return c
	default:
		return nil
	}
}

// CloneExpressions deep-copies a slice of expressions.
func CloneExpressions(exprs []Expression) []Expression {
	if exprs == nil {
		return nil
	}
	out := make([]Expression, len(exprs))
	for i, e := range exprs {
		out[i] = CloneExpression(e)
	}
	return out
}
