package platform

import (
	"math"
	"regexp"
	"sort"

	"github.com/google/uuid"

	"github.com/mmibrah2/OpenQL/internal/ir"
)

// identifierRE matches the names the registry accepts for types, objects,
// instructions, and functions. Operator functions ("operator+") are the one
// exception, checked separately.
var identifierRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// operatorNameRE matches the reserved operator-function spelling used by the
// expression printer's operator table.
var operatorNameRE = regexp.MustCompile(`^operator[!-~]+$`)

// Platform is the type registry for one compilation run: the ordered catalogs
// of data types, objects, instruction signatures, and function signatures.
//
// A Platform is shared mutable state under single-writer discipline. All
// Find* methods are read-only and never fail; all Add* methods mutate and
// must not run concurrently with lookups or with an analysis pass.
type Platform struct {
	// RunID identifies the compilation run this registry is scoped to.
	// Uses github.com/google/uuid for RFC 4122 compliant V7 identifiers.
	RunID string

	// DefaultIntType is the integer type literal builders fall back to.
	// Defaults to the first registered integer type.
	DefaultIntType ir.DataType

	// DefaultBitType types generated instruction conditions. Defaults to
	// the first registered bit type.
	DefaultBitType ir.DataType

	// ImplicitBitType types the measurement bit implicitly associated with
	// each qubit. Defaults to the first registered bit type.
	ImplicitBitType ir.DataType

	// MainQubitRegister is the qubit register that bare qubit indices
	// address. Defaults to the first registered qubit-typed object.
	MainQubitRegister ir.ObjectID

	dataTypes    []ir.DataType // name-sorted
	objects      []*ir.Object  // arena; ObjectID is the index
	objectIndex  map[string]ir.ObjectID
	instructions []*ir.InstructionType // generalized roots, name-sorted
	functions    []*ir.FunctionType    // name-sorted
}

// New creates an empty platform registry for a fresh compilation run.
func New() *Platform {
	return &Platform{
		RunID:             uuid.Must(uuid.NewV7()).String(),
		MainQubitRegister: ir.NullObject,
		objectIndex:       make(map[string]ir.ObjectID),
	}
}

// AddDataType registers a data type, keeping the catalog name-sorted. Fails
// with a NameError if the name is not a valid identifier or already taken.
func (p *Platform) AddDataType(typ ir.DataType) (ir.DataType, error) {
	name := typ.TypeName()
	if !identifierRE.MatchString(name) {
		return nil, newNameError(name, "invalid name for new data type: not a valid identifier")
	}
	pos := sort.Search(len(p.dataTypes), func(i int) bool {
		return p.dataTypes[i].TypeName() >= name
	})
	if pos < len(p.dataTypes) && p.dataTypes[pos].TypeName() == name {
		return nil, newNameError(name, "invalid name for new data type: already in use")
	}
	p.dataTypes = append(p.dataTypes, nil)
	copy(p.dataTypes[pos+1:], p.dataTypes[pos:])
	p.dataTypes[pos] = typ

	switch typ.(type) {
	case *ir.IntType:
		if p.DefaultIntType == nil {
			p.DefaultIntType = typ
		}
	case *ir.BitType:
		if p.DefaultBitType == nil {
			p.DefaultBitType = typ
		}
		if p.ImplicitBitType == nil {
			p.ImplicitBitType = typ
		}
	}
	return typ, nil
}

// FindDataType returns the data type with the given name, or nil if no such
// type is registered. Pure lookup, never fails.
func (p *Platform) FindDataType(name string) ir.DataType {
	pos := sort.Search(len(p.dataTypes), func(i int) bool {
		return p.dataTypes[i].TypeName() >= name
	})
	if pos < len(p.dataTypes) && p.dataTypes[pos].TypeName() == name {
		return p.dataTypes[pos]
	}
	return nil
}

// DataTypes returns the name-sorted data type catalog. Callers must not
// modify the returned slice.
func (p *Platform) DataTypes() []ir.DataType { return p.dataTypes }

// AddPhysicalObject registers an addressable resource and returns its
// identifier. The first qubit-typed object becomes the main qubit register
// unless one was already designated.
func (p *Platform) AddPhysicalObject(obj *ir.Object) (ir.ObjectID, error) {
	if !identifierRE.MatchString(obj.Name) {
		return ir.NullObject, newNameError(obj.Name, "invalid name for new object: not a valid identifier")
	}
	if _, exists := p.objectIndex[obj.Name]; exists {
		return ir.NullObject, newNameError(obj.Name, "invalid name for new object: already in use")
	}
	if obj.Type == nil {
		return ir.NullObject, newRegistrationError(obj.Name, "object has no data type")
	}
	id := ir.ObjectID(len(p.objects))
	p.objects = append(p.objects, obj)
	p.objectIndex[obj.Name] = id
	if _, ok := obj.Type.(*ir.QubitType); ok && p.MainQubitRegister == ir.NullObject {
		p.MainQubitRegister = id
	}
	return id, nil
}

// FindPhysicalObject returns the identifier of the named object, or
// ir.NullObject if no such object is registered. Pure lookup, never fails.
func (p *Platform) FindPhysicalObject(name string) ir.ObjectID {
	if id, ok := p.objectIndex[name]; ok {
		return id
	}
	return ir.NullObject
}

// Object resolves an identifier to the registry-owned object. Returns nil
// for the null object and for out-of-range identifiers.
func (p *Platform) Object(id ir.ObjectID) *ir.Object {
	if id < 0 || int(id) >= len(p.objects) {
		return nil
	}
	return p.objects[id]
}

// NumObjects returns the number of registered objects, temporaries included.
func (p *Platform) NumObjects() int { return len(p.objects) }

// NewTemporary allocates an anonymous temporary object of the given type and
// returns its identifier.
func (p *Platform) NewTemporary(typ ir.DataType) ir.ObjectID {
	id := ir.ObjectID(len(p.objects))
	p.objects = append(p.objects, &ir.Object{Type: typ, Temporary: true})
	return id
}

// QubitCount returns the number of qubits in the main qubit register, or zero
// when no qubit register exists.
func (p *Platform) QubitCount() uint64 {
	obj := p.Object(p.MainQubitRegister)
	if obj == nil {
		return 0
	}
	n := uint64(1)
	for _, dim := range obj.Shape {
		n *= dim
	}
	return n
}

// MaxIntFor returns the largest value representable by an integer type. A
// 64-bit unsigned range saturates at math.MaxInt64.
func MaxIntFor(typ *ir.IntType) int64 {
	if typ.Signed {
		if typ.Bits >= 64 {
			return math.MaxInt64
		}
		return int64(1)<<(typ.Bits-1) - 1
	}
	if typ.Bits >= 64 {
		return math.MaxInt64
	}
	return int64(1)<<typ.Bits - 1
}

// MinIntFor returns the smallest value representable by an integer type.
func MinIntFor(typ *ir.IntType) int64 {
	if !typ.Signed {
		return 0
	}
	if typ.Bits >= 64 {
		return math.MinInt64
	}
	return -(int64(1) << (typ.Bits - 1))
}
