package model

import (
	"github.com/cmlang/cml/pkg/ast"
)

// PropertyKind tags the closed set of property variants.
type PropertyKind int

const (
	PropertyKindField PropertyKind = iota
	PropertyKindEnumValue
	PropertyKindRelationship
)

// String returns the kind tag used in syntax-tree records.
func (k PropertyKind) String() string {
	switch k {
	case PropertyKindField:
		return ast.MemberKindField
	case PropertyKindEnumValue:
		return ast.MemberKindEnumValue
	case PropertyKindRelationship:
		return ast.MemberKindRelationship
	default:
		return "unknown"
	}
}

// Property is one member of a class declaration. The variant set is closed:
// Field, EnumValue and Relationship are the only implementations.
type Property interface {
	// Name is the member name, unique within the fully resolved property
	// set of its class.
	Name() string

	// TypeName is the semantic type of the member: a primitive type name
	// or the (short) name of a declared class.
	TypeName() string

	// IsOptional indicates whether instances may omit a value for this
	// member.
	IsOptional() bool

	// Kind tags the variant.
	Kind() PropertyKind

	// validate checks the variant's own constraints against the class that
	// declares it.
	validate(decl *ClassDeclaration) error
}

// Field is a plain scalar or array-valued attribute.
type Field struct {
	name     string
	typeName string
	optional bool
	array    bool
}

func (f *Field) Name() string { return f.name }

func (f *Field) TypeName() string { return f.typeName }

func (f *Field) IsOptional() bool { return f.optional }

// IsArray indicates whether the field holds a sequence of values.
func (f *Field) IsArray() bool { return f.array }

func (f *Field) Kind() PropertyKind { return PropertyKindField }

func (f *Field) validate(decl *ClassDeclaration) error {
	if ast.IsPrimitiveType(f.typeName) {
		return nil
	}
	if _, ok := decl.file.resolveTypeName(f.typeName); !ok {
		return NewTypeNotFoundErr(decl.name, f.name, f.typeName, decl.file.knownTypeNames())
	}
	return nil
}

// EnumValue is a member of an enumeration class's value set. Enum values
// are string-semantic and never optional.
type EnumValue struct {
	name string
}

func (v *EnumValue) Name() string { return v.name }

func (v *EnumValue) TypeName() string { return ast.TypeString }

func (v *EnumValue) IsOptional() bool { return false }

func (v *EnumValue) Kind() PropertyKind { return PropertyKindEnumValue }

func (v *EnumValue) validate(decl *ClassDeclaration) error {
	if !decl.IsEnum() {
		return NewEnumValueOutsideEnumErr(decl.name, v.name)
	}
	return nil
}

// Relationship is a typed reference to another class that is a valid
// relationship target.
type Relationship struct {
	name     string
	target   string
	optional bool
	array    bool
}

func (r *Relationship) Name() string { return r.name }

func (r *Relationship) TypeName() string { return r.target }

func (r *Relationship) IsOptional() bool { return r.optional }

// IsArray indicates whether the relationship references a sequence of
// instances.
func (r *Relationship) IsArray() bool { return r.array }

func (r *Relationship) Kind() PropertyKind { return PropertyKindRelationship }

func (r *Relationship) validate(decl *ClassDeclaration) error {
	target, ok := decl.file.resolveTypeName(r.target)
	if !ok {
		return NewTypeNotFoundErr(decl.name, r.name, r.target, decl.file.knownTypeNames())
	}
	if !target.IsRelationshipTarget() {
		return NewInvalidRelationshipTargetErr(decl.name, r.name, r.target)
	}
	return nil
}

// newProperty builds the matching Property variant for a member
// declaration node.
func newProperty(className string, node *ast.MemberNode) (Property, error) {
	if node == nil {
		return nil, NewInvalidInputErr("member node")
	}

	switch node.Kind {
	case ast.MemberKindField:
		return &Field{
			name:     node.Name,
			typeName: node.Type,
			optional: node.Optional,
			array:    node.Array,
		}, nil
	case ast.MemberKindEnumValue:
		return &EnumValue{
			name: node.Name,
		}, nil
	case ast.MemberKindRelationship:
		return &Relationship{
			name:     node.Name,
			target:   node.Type,
			optional: node.Optional,
			array:    node.Array,
		}, nil
	default:
		return nil, NewUnrecognizedConstructErr(className, node.Kind)
	}
}

var (
	_ Property = &Field{}
	_ Property = &EnumValue{}
	_ Property = &Relationship{}
)
