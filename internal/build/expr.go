package build

import (
	"fmt"

	"github.com/mmibrah2/OpenQL/internal/ir"
	"github.com/mmibrah2/OpenQL/internal/platform"
)

// MakeIntLit builds an integer literal of the given type, or of the
// platform's default integer type when typ is nil. The value must be
// representable by the type.
func MakeIntLit(p *platform.Platform, value int64, typ ir.DataType) (*ir.IntLiteral, error) {
	if typ == nil {
		typ = p.DefaultIntType
	}
	ityp, ok := typ.(*ir.IntType)
	if !ok {
		return nil, newTypeMismatchError("", "literal type is not an integer type")
	}
	if value < platform.MinIntFor(ityp) || value > platform.MaxIntFor(ityp) {
		return nil, &Error{
			Code:    ErrCodeRange,
			Message: fmt.Sprintf("value %d does not fit %s", value, ityp.Name),
		}
	}
	return &ir.IntLiteral{Value: value, Type: typ}, nil
}

// MakeUIntLit builds an integer literal from an unsigned value.
func MakeUIntLit(p *platform.Platform, value uint64, typ ir.DataType) (*ir.IntLiteral, error) {
	if value > uint64(1)<<63-1 {
		return nil, &Error{
			Code:    ErrCodeRange,
			Message: fmt.Sprintf("value %d does not fit any integer type", value),
		}
	}
	return MakeIntLit(p, int64(value), typ)
}

// MakeBitLit builds a bit literal of the given type, or of the platform's
// default bit type when typ is nil.
func MakeBitLit(p *platform.Platform, value bool, typ ir.DataType) (*ir.BitLiteral, error) {
	if typ == nil {
		typ = p.DefaultBitType
	}
	if _, ok := typ.(*ir.BitType); !ok {
		return nil, newTypeMismatchError("", "literal type is not a bit type")
	}
	return &ir.BitLiteral{Value: value, Type: typ}, nil
}

// MakeRealLit builds a real literal of the given type.
func MakeRealLit(p *platform.Platform, value float64, typ ir.DataType) (*ir.RealLiteral, error) {
	if _, ok := typ.(*ir.RealType); !ok {
		return nil, newTypeMismatchError("", "literal type is not a real type")
	}
	return &ir.RealLiteral{Value: value, Type: typ}, nil
}

// MakeReference builds a reference to (an element of) an object using literal
// indices. The index path is checked against the object's declared shape; a
// path shorter than the shape addresses the whole remaining sub-array.
func MakeReference(p *platform.Platform, id ir.ObjectID, indices ...uint64) (*ir.Reference, error) {
	obj := p.Object(id)
	if obj == nil {
		return nil, newIndexError(fmt.Sprintf("object %d is not registered", id))
	}
	if len(indices) > len(obj.Shape) {
		return nil, newIndexError(fmt.Sprintf(
			"index path has %d entries but the object has %d dimensions", len(indices), len(obj.Shape)))
	}
	ref := &ir.Reference{Object: id, Type: obj.Type}
	for dim, idx := range indices {
		if idx >= obj.Shape[dim] {
			return nil, newIndexError(fmt.Sprintf(
				"index %d out of range for dimension %d of size %d", idx, dim, obj.Shape[dim]))
		}
		ref.Indices = append(ref.Indices, &ir.IntLiteral{Value: int64(idx), Type: p.DefaultIntType})
	}
	return ref, nil
}

// MakeQubitRef builds a reference to a qubit in the main qubit register.
func MakeQubitRef(p *platform.Platform, index uint64) (*ir.Reference, error) {
	if p.MainQubitRegister == ir.NullObject {
		return nil, newIndexError("platform has no main qubit register")
	}
	return MakeReference(p, p.MainQubitRegister, index)
}

// MakeBitRef builds a reference to the implicit measurement bit associated
// with a qubit in the main qubit register.
func MakeBitRef(p *platform.Platform, index uint64) (*ir.Reference, error) {
	ref, err := MakeQubitRef(p, index)
	if err != nil {
		return nil, err
	}
	if p.ImplicitBitType == nil {
		return nil, newTypeMismatchError("", "platform has no implicit measurement bit type")
	}
	ref.Type = p.ImplicitBitType
	return ref, nil
}

// MakeTemporary allocates a fresh anonymous temporary of the given type and
// returns a reference to it.
func MakeTemporary(p *platform.Platform, typ ir.DataType) (*ir.Reference, error) {
	if typ == nil {
		return nil, newTypeMismatchError("", "temporary has no data type")
	}
	return &ir.Reference{Object: p.NewTemporary(typ), Type: typ}, nil
}

// IsAssignableOrQubit reports whether an expression may appear on the
// left-hand side of an assignment or as a write-mode operand: only
// references qualify.
func IsAssignableOrQubit(expr ir.Expression) bool {
	_, ok := expr.(*ir.Reference)
	return ok
}
