// Package ast defines the syntax-tree records handed to the semantic model
// by the parser. The records are plain data: no cross-file references are
// resolved at this level.
package ast

// Member declaration kinds. The set is closed; a member carrying any other
// kind tag fails class construction.
const (
	MemberKindField        = "field"
	MemberKindRelationship = "relationship"
	MemberKindEnumValue    = "enumValue"
)

// Class declaration kinds. The set is closed; consumers switch on these
// exhaustively.
const (
	ClassKindConcept     = "concept"
	ClassKindEnum        = "enum"
	ClassKindAsset       = "asset"
	ClassKindParticipant = "participant"
	ClassKindTransaction = "transaction"
	ClassKindEvent       = "event"
)

// Primitive semantic type names.
const (
	TypeString   = "String"
	TypeInteger  = "Integer"
	TypeLong     = "Long"
	TypeDouble   = "Double"
	TypeBoolean  = "Boolean"
	TypeDateTime = "DateTime"
)

// IsPrimitiveType returns true if the given type name is one of the
// built-in primitive semantic types.
func IsPrimitiveType(name string) bool {
	switch name {
	case TypeString, TypeInteger, TypeLong, TypeDouble, TypeBoolean, TypeDateTime:
		return true
	default:
		return false
	}
}

// ModelNode is the root of a parsed model document: a single namespace,
// its imports (fully-qualified class names) and its class declarations.
type ModelNode struct {
	Namespace string       `yaml:"namespace"`
	Imports   []string     `yaml:"imports,omitempty"`
	Classes   []*ClassNode `yaml:"classes,omitempty"`
}

// ClassNode is the syntax-tree record for one class declaration.
type ClassNode struct {
	Name            string        `yaml:"name"`
	Kind            string        `yaml:"kind"`
	Abstract        bool          `yaml:"abstract,omitempty"`
	SuperType       string        `yaml:"extends,omitempty"`
	IdentifierField string        `yaml:"identified_by,omitempty"`
	Members         []*MemberNode `yaml:"properties,omitempty"`
}

// MemberNode is the syntax-tree record for one member declaration inside a
// class body, tagged with its member kind.
type MemberNode struct {
	Kind     string `yaml:"kind"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
	Array    bool   `yaml:"array,omitempty"`
}
