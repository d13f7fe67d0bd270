package ir

// Statement is a sealed interface over the statement nodes a block can hold:
// instructions plus the structured control-flow statements.
type Statement interface {
	statement() // Sealed - only these types implement it
}

// Instruction is the subset of statements that execute as a single scheduled
// operation.
type Instruction interface {
	Statement
	instruction()
}

// CustomInstruction is a platform-defined instruction. Operands holds only
// the explicit operands; values bound as template operands live on the
// (specialized) instruction type.
type CustomInstruction struct {
	Type     *InstructionType
	Operands []Expression

	// Condition guards execution; the literal true of the platform's
	// default bit type means unconditional.
	Condition Expression

	// Cycle is the schedule slot within the enclosing block, assigned by
	// the scheduler. Zero before scheduling.
	Cycle int64
}

func (*CustomInstruction) statement()   {}
func (*CustomInstruction) instruction() {}

// SetInstruction assigns a classical expression to a classical reference of
// the identical data type.
type SetInstruction struct {
	LHS       *Reference
	RHS       Expression
	Condition Expression
	Cycle     int64
}

func (*SetInstruction) statement()   {}
func (*SetInstruction) instruction() {}

// WaitInstruction delays the referenced objects for Duration cycles. With an
// empty object list it is a full barrier on everything. Wait instructions are
// always unconditional; a zero-duration wait is a barrier.
type WaitInstruction struct {
	Duration uint64
	Objects  []*Reference
	Cycle    int64
}

func (*WaitInstruction) statement()   {}
func (*WaitInstruction) instruction() {}

// IsBarrier reports whether the wait is a pure ordering barrier.
func (w *WaitInstruction) IsBarrier() bool { return w.Duration == 0 }

// GotoInstruction transfers control to another block. Not constructible via
// the builder surface; front-ends for unstructured languages create it
// directly.
type GotoInstruction struct {
	Target    *Block
	Condition Expression
	Cycle     int64
}

func (*GotoInstruction) statement()   {}
func (*GotoInstruction) instruction() {}

// DummyInstruction is a placeholder that touches nothing. Not constructible
// via the builder surface.
type DummyInstruction struct {
	Cycle int64
}

func (*DummyInstruction) statement()   {}
func (*DummyInstruction) instruction() {}

// IfElse selects at most one of its branch bodies by the first condition that
// holds, falling back to Otherwise when none does.
type IfElse struct {
	Branches  []*IfElseBranch
	Otherwise *Block
}

func (*IfElse) statement() {}

// IfElseBranch pairs a branch condition with its body.
type IfElseBranch struct {
	Condition Expression
	Body      *Block
}

// ForLoop runs Body while Condition holds, with optional classical
// initialize/update assignments.
type ForLoop struct {
	Initialize *SetInstruction
	Condition  Expression
	Update     *SetInstruction
	Body       *Block
}

func (*ForLoop) statement() {}

// BreakStatement leaves the innermost loop.
type BreakStatement struct{}

func (*BreakStatement) statement() {}

// ContinueStatement skips to the next iteration of the innermost loop.
type ContinueStatement struct{}

func (*ContinueStatement) statement() {}

// Block is a straight-line sequence of statements. Blocks own their
// statements; replacing a block discards the old tree.
type Block struct {
	Name       string
	Statements []Statement
}
