package mpo

// TypeDef is an immutable, string-named node in a type hierarchy.
//
// Routing decisions in this package rely on name equality along the
// parent chain rather than on Go's own type system, so the same wiring
// configuration stays valid across reimplementations. One TypeDef is
// declared per concrete message or action type, typically as a package
// level variable, and lives for the lifetime of the process.
//
//	var SensorType = mpo.NewTypeDef("SensorReading", mpo.MessageType)
//	var CameraType = mpo.NewTypeDef("CameraReading", SensorType)
type TypeDef struct {
	name   string
	parent *TypeDef
}

// NewTypeDef creates a type descriptor with the given name and parent.
// A nil parent marks the root of a hierarchy. The parent chain must be
// acyclic; descriptors are never mutated after construction.
func NewTypeDef(name string, parent *TypeDef) *TypeDef {
	return &TypeDef{name: name, parent: parent}
}

// Name returns the name of the type.
func (t *TypeDef) Name() string { return t.name }

// Parent returns the parent descriptor, or nil for a root type.
func (t *TypeDef) Parent() *TypeDef { return t.parent }

// IsSameOrSubtypeOf reports whether t is the same type as other or one
// of its subtypes. It walks from t toward the root comparing names and
// is true iff other's name appears in t's ancestor chain, t included.
// The cost is O(depth of the hierarchy).
func (t *TypeDef) IsSameOrSubtypeOf(other *TypeDef) bool {
	if t == nil || other == nil {
		return false
	}
	for cur := t; cur != nil; cur = cur.parent {
		if cur.name == other.name {
			return true
		}
	}
	return false
}

// Conventional hierarchy roots. User message types descend from
// MessageType and user action types descend from ActionType.
var (
	MessageType = NewTypeDef("Message", nil)
	ActionType  = NewTypeDef("Action", nil)
)
