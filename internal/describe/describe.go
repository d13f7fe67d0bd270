package describe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmibrah2/OpenQL/internal/build"
	"github.com/mmibrah2/OpenQL/internal/ir"
	"github.com/mmibrah2/OpenQL/internal/platform"
)

// Node gives a one-line description of any IR node. Unknown node kinds
// render as "<unknown node>".
func Node(p *platform.Platform, node any) string {
	switch n := node.(type) {
	case *ir.IntType:
		sign := "unsigned"
		if n.Signed {
			sign = "signed"
		}
		return fmt.Sprintf("%s: %d-bit %s integer type", n.Name, n.Bits, sign)
	case *ir.BitType:
		return n.Name + ": bit type"
	case *ir.QubitType:
		return n.Name + ": qubit type"
	case *ir.RealType:
		return n.Name + ": real type"
	case ir.ObjectID:
		obj := p.Object(n)
		if obj == nil {
			return "null object"
		}
		return objectLine(objectName(p, n), obj)
	case *ir.Object:
		name := plainObjectName(n)
		return objectLine(name, n)
	case *ir.InstructionType:
		return instructionTypeLine(p, n)
	case *ir.FunctionType:
		return functionTypeLine(n)
	case ir.UniqueReference:
		return uniqueReferenceLine(p, n)
	case ir.Expression:
		return Expression(p, n)
	case ir.Statement:
		return Statement(p, n)
	case *ir.Block:
		return blockLine(n)
	default:
		return "<unknown node>"
	}
}

// Expression renders an expression with minimal parenthesization, using the
// operator-metadata table for operator function calls.
func Expression(p *platform.Platform, expr ir.Expression) string {
	return renderExpression(p, expr, 0)
}

// Statement gives a one-line description of a statement.
func Statement(p *platform.Platform, stmt ir.Statement) string {
	switch s := stmt.(type) {
	case *ir.CustomInstruction:
		line := s.Type.Name
		if operands := build.GetOperands(s); len(operands) > 0 {
			line += " " + renderOperands(p, operands)
		}
		return line + conditionSuffix(p, s.Condition)
	case *ir.SetInstruction:
		line := "set " + Expression(p, s.LHS) + " = " + Expression(p, s.RHS)
		return line + conditionSuffix(p, s.Condition)
	case *ir.WaitInstruction:
		var line string
		if s.IsBarrier() {
			line = "barrier"
		} else {
			line = "wait " + strconv.FormatUint(s.Duration, 10)
		}
		for i, ref := range s.Objects {
			if i == 0 && s.IsBarrier() {
				line += " " + Expression(p, ref)
			} else {
				line += ", " + Expression(p, ref)
			}
		}
		return line
	case *ir.GotoInstruction:
		target := "<anonymous>"
		if s.Target != nil && s.Target.Name != "" {
			target = s.Target.Name
		}
		return "goto " + target + conditionSuffix(p, s.Condition)
	case *ir.DummyInstruction:
		return "dummy"
	case *ir.IfElse:
		var line strings.Builder
		for i, branch := range s.Branches {
			if i == 0 {
				line.WriteString("if ")
			} else {
				line.WriteString(" elif ")
			}
			line.WriteString(Expression(p, branch.Condition))
			line.WriteString(" ")
			line.WriteString(blockBody(branch.Body))
		}
		if s.Otherwise != nil {
			line.WriteString(" else ")
			line.WriteString(blockBody(s.Otherwise))
		}
		return line.String()
	case *ir.ForLoop:
		line := "for "
		if s.Initialize != nil {
			line += Expression(p, s.Initialize.LHS) + " = " + Expression(p, s.Initialize.RHS) + "; "
		}
		line += Expression(p, s.Condition)
		if s.Update != nil {
			line += "; " + Expression(p, s.Update.LHS) + " = " + Expression(p, s.Update.RHS)
		}
		return line + " " + blockBody(s.Body)
	case *ir.BreakStatement:
		return "break"
	case *ir.ContinueStatement:
		return "continue"
	default:
		return "<unknown statement>"
	}
}

func renderExpression(p *platform.Platform, expr ir.Expression, minPrec int) string {
	switch e := expr.(type) {
	case *ir.IntLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *ir.BitLiteral:
		if e.Value {
			return "true"
		}
		return "false"
	case *ir.RealLiteral:
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *ir.Reference:
		if e.IsNull() {
			return "null"
		}
		line := objectName(p, e.Object)
		if obj := p.Object(e.Object); obj != nil {
			if _, bit := e.Type.(*ir.BitType); bit && obj.Type != e.Type {
				// Implicit measurement-bit view of a qubit register.
				line = "b:" + line
			}
		}
		for _, idx := range e.Indices {
			line += "[" + renderExpression(p, idx, 0) + "]"
		}
		return line
	case *ir.FunctionCall:
		return renderCall(p, e, minPrec)
	default:
		return "<unknown expression>"
	}
}

func renderCall(p *platform.Platform, call *ir.FunctionCall, minPrec int) string {
	name := call.Function.Name
	info, ok := LookupOperator(name, len(call.Operands))
	if !ok {
		args := make([]string, len(call.Operands))
		for i, op := range call.Operands {
			args[i] = renderExpression(p, op, 0)
		}
		return name + "(" + strings.Join(args, ", ") + ")"
	}

	var line string
	switch len(call.Operands) {
	case 1:
		line = info.Prefix + renderExpression(p, call.Operands[0], info.Precedence)
	case 2:
		leftMin, rightMin := info.Precedence, info.Precedence+1
		if info.Associativity == AssocRight {
			leftMin, rightMin = info.Precedence+1, info.Precedence
		}
		line = renderExpression(p, call.Operands[0], leftMin) +
			info.Infix +
			renderExpression(p, call.Operands[1], rightMin)
	case 3:
		line = renderExpression(p, call.Operands[0], info.Precedence+1) +
			info.Infix +
			renderExpression(p, call.Operands[1], 0) +
			info.Infix2 +
			renderExpression(p, call.Operands[2], info.Precedence)
	}
	if info.Precedence < minPrec {
		return "(" + line + ")"
	}
	return line
}

func renderOperands(p *platform.Platform, operands []ir.Expression) string {
	parts := make([]string, len(operands))
	for i, op := range operands {
		parts[i] = Expression(p, op)
	}
	return strings.Join(parts, ", ")
}

func conditionSuffix(p *platform.Platform, condition ir.Expression) string {
	if condition == nil || ir.IsTrueLiteral(condition) {
		return ""
	}
	return " if " + Expression(p, condition)
}

func objectName(p *platform.Platform, id ir.ObjectID) string {
	obj := p.Object(id)
	switch {
	case obj == nil:
		return "null"
	case obj.Name != "":
		return obj.Name
	default:
		return "t" + strconv.FormatInt(int64(id), 10)
	}
}

func plainObjectName(obj *ir.Object) string {
	if obj.Name != "" {
		return obj.Name
	}
	return "(temporary)"
}

func objectLine(name string, obj *ir.Object) string {
	line := name + ": " + obj.Type.TypeName()
	for _, dim := range obj.Shape {
		line += "[" + strconv.FormatUint(dim, 10) + "]"
	}
	return line
}

func instructionTypeLine(p *platform.Platform, ityp *ir.InstructionType) string {
	slots := make([]string, len(ityp.Operands))
	for i, slot := range ityp.Operands {
		slots[i] = slot.Mode.String() + ":" + slot.Type.TypeName()
	}
	line := ityp.Name + "(" + strings.Join(slots, ", ") + ")"
	if ityp.Quantum {
		line += fmt.Sprintf(", quantum, duration %d", ityp.Duration)
	}
	if len(ityp.TemplateOperands) > 0 {
		line += " with " + renderOperands(p, ityp.TemplateOperands)
	}
	return line
}

func functionTypeLine(ftyp *ir.FunctionType) string {
	slots := make([]string, len(ftyp.Operands))
	for i, slot := range ftyp.Operands {
		slots[i] = slot.Mode.String() + ":" + slot.Type.TypeName()
	}
	return ftyp.Name + "(" + strings.Join(slots, ", ") + ") -> " + ftyp.ReturnType.TypeName()
}

func uniqueReferenceLine(p *platform.Platform, ref ir.UniqueReference) string {
	if ref.IsNull() {
		return "null"
	}
	line := objectName(p, ref.Object)
	if ref.Type != nil {
		if obj := p.Object(ref.Object); obj != nil && obj.Type != ref.Type {
			line = "b:" + line
		}
	}
	for _, part := range strings.Split(strings.TrimSuffix(ref.Path, ","), ",") {
		if part != "" {
			line += "[" + part + "]"
		}
	}
	return line
}

func blockBody(block *ir.Block) string {
	if block == nil {
		return "{ }"
	}
	n := len(block.Statements)
	noun := "statements"
	if n == 1 {
		noun = "statement"
	}
	return fmt.Sprintf("{ %d %s }", n, noun)
}

func blockLine(block *ir.Block) string {
	line := "block"
	if block.Name != "" {
		line += " " + block.Name
	}
	return line + " " + blockBody(block)
}
