package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cmlang/cml/pkg/ast"
)

// ClassKind tags the closed set of class declaration variants. Downstream
// consumers switch on classifications exhaustively, so the set is a tagged
// variant rather than open-ended subclassing.
type ClassKind int

const (
	ClassKindConcept ClassKind = iota
	ClassKindEnum
	ClassKindAsset
	ClassKindParticipant
	ClassKindTransaction
	ClassKindEvent
)

var classKindTags = map[string]ClassKind{
	ast.ClassKindConcept:     ClassKindConcept,
	ast.ClassKindEnum:        ClassKindEnum,
	ast.ClassKindAsset:       ClassKindAsset,
	ast.ClassKindParticipant: ClassKindParticipant,
	ast.ClassKindTransaction: ClassKindTransaction,
	ast.ClassKindEvent:       ClassKindEvent,
}

// String returns the kind tag used in syntax-tree records.
func (k ClassKind) String() string {
	for tag, kind := range classKindTags {
		if kind == k {
			return tag
		}
	}
	return "unknown"
}

// ClassDeclaration is one class in a namespace: an ordered sequence of
// properties plus optional references, by short name, to a super-type and
// an identifying field. A declaration is built once from its syntax-tree
// node and is immutable afterward; the validation pass reads but never
// mutates it.
type ClassDeclaration struct {
	file                *ModelFile
	name                string
	kind                ClassKind
	abstract            bool
	superType           string
	identifierFieldName string
	ownProperties       []Property
}

// NewClassDeclaration builds a declaration from a syntax-tree node. This
// is the structural phase: member nodes fan out into Property variants per
// kind tag, and no cross-file reference is resolved, since sibling
// namespaces may not yet be loaded.
func NewClassDeclaration(file *ModelFile, node *ast.ClassNode) (*ClassDeclaration, error) {
	if file == nil {
		return nil, NewInvalidInputErr("model file")
	}
	if node == nil {
		return nil, NewInvalidInputErr("class node")
	}
	if node.Name == "" {
		return nil, NewInvalidInputErr("class name")
	}

	kind, ok := classKindTags[node.Kind]
	if !ok {
		return nil, NewUnrecognizedConstructErr(node.Name, node.Kind)
	}

	properties := make([]Property, 0, len(node.Members))
	for _, member := range node.Members {
		property, err := newProperty(node.Name, member)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}

	return &ClassDeclaration{
		file:                file,
		name:                node.Name,
		kind:                kind,
		abstract:            node.Abstract,
		superType:           node.SuperType,
		identifierFieldName: node.IdentifierField,
		ownProperties:       properties,
	}, nil
}

// Name returns the short name of the class, unique within its namespace.
func (cd *ClassDeclaration) Name() string { return cd.name }

// ModelFile returns the namespace container that declares this class.
func (cd *ClassDeclaration) ModelFile() *ModelFile { return cd.file }

// Kind returns the class kind tag.
func (cd *ClassDeclaration) Kind() ClassKind { return cd.kind }

// IsAbstract indicates whether the class may be referenced as a type but
// not instantiated.
func (cd *ClassDeclaration) IsAbstract() bool { return cd.abstract }

// IsEnum indicates whether the class is an enumeration.
func (cd *ClassDeclaration) IsEnum() bool { return cd.kind == ClassKindEnum }

// IsConcept indicates whether the class is a plain concept type.
func (cd *ClassDeclaration) IsConcept() bool { return cd.kind == ClassKindConcept }

// IsRelationshipTarget indicates whether relationships may point at
// instances of this class.
func (cd *ClassDeclaration) IsRelationshipTarget() bool {
	switch cd.kind {
	case ClassKindAsset, ClassKindParticipant, ClassKindTransaction, ClassKindEvent:
		return true
	default:
		return false
	}
}

// SuperTypeName returns the declared super-type short name, or empty if the
// class extends nothing.
func (cd *ClassDeclaration) SuperTypeName() string { return cd.superType }

// GetFullyQualifiedName returns `namespace.ClassName`. The value is
// computed, never stored, so it always reflects the owning namespace.
func (cd *ClassDeclaration) GetFullyQualifiedName() string {
	return cd.file.Namespace() + "." + cd.name
}

// GetOwnProperties returns the declared properties, in declaration order,
// without any inherited ones.
func (cd *ClassDeclaration) GetOwnProperties() []Property {
	return slices.Clone(cd.ownProperties)
}

// GetOwnProperty returns the declared property with the given name, or nil
// if the class itself declares no such property. Inherited properties are
// not consulted.
func (cd *ClassDeclaration) GetOwnProperty(name string) Property {
	for _, property := range cd.ownProperties {
		if property.Name() == name {
			return property
		}
	}
	return nil
}

// GetProperty returns the property with the given name, searching own
// properties first and then the resolved super-type chain. A nil Property
// with a nil error means no such property exists anywhere in the chain;
// callers decide whether that is an error.
func (cd *ClassDeclaration) GetProperty(name string) (Property, error) {
	if property := cd.GetOwnProperty(name); property != nil {
		return property, nil
	}

	super, err := cd.resolveSuperType()
	if err != nil || super == nil {
		return nil, err
	}
	return super.GetProperty(name)
}

// GetProperties returns the fully resolved property sequence: own
// properties first, in declaration order, followed by the super-type's own
// full resolved sequence.
func (cd *ClassDeclaration) GetProperties() ([]Property, error) {
	properties := slices.Clone(cd.ownProperties)

	super, err := cd.resolveSuperType()
	if err != nil {
		return nil, err
	}
	if super != nil {
		inherited, err := super.GetProperties()
		if err != nil {
			return nil, err
		}
		properties = append(properties, inherited...)
	}
	return properties, nil
}

// OwnIdentifierFieldName returns the identifying field name declared on
// this class itself, or empty, without consulting the chain.
func (cd *ClassDeclaration) OwnIdentifierFieldName() string {
	return cd.identifierFieldName
}

// GetIdentifierFieldName returns the name of the identifying field declared
// on this class or inherited from its chain, or empty if none is declared
// anywhere.
func (cd *ClassDeclaration) GetIdentifierFieldName() (string, error) {
	if cd.identifierFieldName != "" {
		return cd.identifierFieldName, nil
	}

	super, err := cd.resolveSuperType()
	if err != nil || super == nil {
		return "", err
	}
	return super.GetIdentifierFieldName()
}

// resolveSuperType resolves the declared super-type short name, first
// through the import table and otherwise locally. A nil declaration with a
// nil error means no super-type is declared.
func (cd *ClassDeclaration) resolveSuperType() (*ClassDeclaration, error) {
	if cd.superType == "" {
		return nil, nil
	}

	super, ok := cd.file.resolveTypeName(cd.superType)
	if !ok {
		return nil, NewUnresolvedSuperTypeErr(cd.name, cd.superType, cd.file.knownTypeNames())
	}
	return super, nil
}

// String returns the canonical diagnostic form of the declaration for
// tooling and error messages.
func (cd *ClassDeclaration) String() string {
	var b strings.Builder
	if cd.abstract {
		b.WriteString("abstract ")
	}
	fmt.Fprintf(&b, "%s %s", cd.kind, cd.GetFullyQualifiedName())
	if cd.identifierFieldName != "" {
		fmt.Fprintf(&b, " identified by %s", cd.identifierFieldName)
	}
	if cd.superType != "" {
		fmt.Fprintf(&b, " extends %s", cd.superType)
	}
	return b.String()
}
