package ir

// DataType is a sealed interface over the classical and quantum data types a
// platform can declare. Only IntType, BitType, QubitType, and RealType
// implement it. A DataType value always holds a pointer to the registry-owned
// instance, so two links are equal exactly when they name the same registered
// type.
type DataType interface {
	dataType() // Sealed - only these types implement it

	// TypeName returns the registered name of the type.
	TypeName() string

	// Classical reports whether the type lives in the classical domain.
	Classical() bool
}

// IntType is a classical integer type with a fixed bit width and signedness.
type IntType struct {
	Name   string
	Signed bool
	Bits   int
}

func (*IntType) dataType() {}

// TypeName returns the registered name of the type.
func (t *IntType) TypeName() string { return t.Name }

// Classical reports whether the type lives in the classical domain.
func (*IntType) Classical() bool { return true }

// BitType is a classical single-bit type, also used for the implicit
// measurement bits associated with qubits.
type BitType struct {
	Name string
}

func (*BitType) dataType() {}

// TypeName returns the registered name of the type.
func (t *BitType) TypeName() string { return t.Name }

// Classical reports whether the type lives in the classical domain.
func (*BitType) Classical() bool { return true }

// QubitType is the quantum two-level system type.
type QubitType struct {
	Name string
}

func (*QubitType) dataType() {}

// TypeName returns the registered name of the type.
func (t *QubitType) TypeName() string { return t.Name }

// Classical reports whether the type lives in the classical domain.
func (*QubitType) Classical() bool { return false }

// RealType is a classical real-number type, used for rotation angles.
type RealType struct {
	Name string
}

func (*RealType) dataType() {}

// TypeName returns the registered name of the type.
func (t *RealType) TypeName() string { return t.Name }

// Classical reports whether the type lives in the classical domain.
func (*RealType) Classical() bool { return true }

// ObjectID identifies a registry-owned object by its arena index. References
// store only the identifier plus an index path; the registry owns the object.
type ObjectID int32

// NullObject is the sentinel identifier for the null object: the "everything"
// target that full barriers and goto instructions conflict on.
const NullObject ObjectID = -1

// Object is a named addressable resource (register or register array) with a
// data type and shape. Temporaries carry an empty name.
type Object struct {
	Name string
	Type DataType

	// Shape holds the array dimensions; empty means scalar.
	Shape []uint64

	// Temporary marks objects allocated by the compiler rather than
	// declared by the platform description.
	Temporary bool
}

// OperandType declares how one operand slot of an instruction or function
// signature is accessed and what data type it carries.
type OperandType struct {
	Mode AccessMode
	Type DataType
}

// InstructionType is an instruction signature node in a specialization tree.
//
// The root of a tree is the fully generalized signature: zero template
// operands and a nil Generalization link. Every child shares the root's name
// and operand-type list and binds exactly one more template operand than its
// parent. Template operands precede the explicit operands in the uniform
// operand view; lookup by operand types sees only the explicit list and is
// therefore unaffected by specialization.
type InstructionType struct {
	Name string

	// Operands is the explicit operand-type list, shared across the whole
	// specialization tree.
	Operands []OperandType

	// TemplateOperands holds the constant operand values this
	// specialization binds, in binding order, preceding the explicit
	// operands. Empty at the tree root.
	TemplateOperands []Expression

	// Quantum marks instructions that occupy quantum-cycle time.
	Quantum bool

	// Duration of the instruction in quantum cycles.
	Duration uint64

	// Decompositions lists the decomposition rules registered for this
	// exact (possibly specialized) signature.
	Decompositions []*DecompositionRule

	// Generalization points at the parent node; nil at the tree root.
	// The link is non-owning: the registry owns every node.
	Generalization *InstructionType

	// Specializations holds the registry-owned children.
	Specializations []*InstructionType
}

// DecompositionRule maps an instruction signature to an equivalent expansion
// in terms of other instructions.
type DecompositionRule struct {
	Name string

	// Parameters holds the objects the expansion's references are written
	// against, positionally matching the instruction's operands.
	Parameters []ObjectID

	// Expansion is the replacement body.
	Expansion *Block

	// Duration of the expansion in quantum cycles.
	Duration uint64
}

// FunctionType is a function signature: name, operand types, and return type.
// Functions have no specialization tree.
type FunctionType struct {
	Name       string
	Operands   []OperandType
	ReturnType DataType
}
