package ir

import "strconv"

// UniqueReference is the value-comparable identity of (an element of) an
// object, used as the key of hazard-analysis maps. It carries the object
// identifier, the data-type link (a qubit element and its implicit
// measurement bit are distinct hazards on the same storage), and a canonical
// encoding of the literal index path.
//
// A reference with a non-literal index cannot be pinned to one element; its
// path is truncated at the first dynamic index, so it collides with the
// whole-object entry and merging escalates the conflict to write.
//
// The zero-indexable null object ({Object: NullObject}) is the sentinel for
// full-barrier and goto hazards.
type UniqueReference struct {
	Object ObjectID
	Type   DataType

	// Path is the canonical index-path encoding: each literal index in
	// decimal followed by ','. "3,0," addresses element [3][0].
	Path string
}

// NewUniqueReference derives the hazard key for a reference.
func NewUniqueReference(ref *Reference) UniqueReference {
	u := UniqueReference{Object: ref.Object, Type: ref.Type}
	for _, idx := range ref.Indices {
		lit, ok := idx.(*IntLiteral)
		if !ok {
			break
		}
		u.Path += strconv.FormatInt(lit.Value, 10) + ","
	}
	return u
}

// NullUniqueReference returns the hazard key of the null object.
func NullUniqueReference() UniqueReference {
	return UniqueReference{Object: NullObject}
}

// IsNull reports whether the key identifies the null object.
func (u UniqueReference) IsNull() bool { return u.Object == NullObject }

// Overlaps reports whether two keys can address overlapping storage without
// being equal: same object and type, one index path a prefix of the other.
func (u UniqueReference) Overlaps(v UniqueReference) bool {
	if u == v || u.Object != v.Object || u.Type != v.Type {
		return false
	}
	if len(u.Path) < len(v.Path) {
		return v.Path[:len(u.Path)] == u.Path
	}
	return u.Path[:len(v.Path)] == v.Path
}

// Less orders keys by object, then type name, then index path. The order is
// deterministic but otherwise arbitrary; it exists so consumers can iterate
// access maps reproducibly.
func (u UniqueReference) Less(v UniqueReference) bool {
	if u.Object != v.Object {
		return u.Object < v.Object
	}
	un, vn := "", ""
	if u.Type != nil {
		un = u.Type.TypeName()
	}
	if v.Type != nil {
		vn = v.Type.TypeName()
	}
	if un != vn {
		return un < vn
	}
	return u.Path < v.Path
}
