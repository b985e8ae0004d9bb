package model

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"

	"github.com/cmlang/cml/pkg/modelerrors"
)

// ErrorCode is the stable machine-readable code carried by every illegal
// model error.
type ErrorCode string

const (
	CodeInvalidInput              ErrorCode = "invalid-input"
	CodeUnrecognizedConstruct     ErrorCode = "unrecognized-construct"
	CodeUnresolvedSuperType       ErrorCode = "unresolved-super-type"
	CodeUnresolvedIdentifier      ErrorCode = "unresolved-identifier"
	CodeInvalidIdentifierType     ErrorCode = "invalid-identifier-type"
	CodeOptionalIdentifier        ErrorCode = "optional-identifier"
	CodeDuplicateProperty         ErrorCode = "duplicate-property"
	CodeCyclicInheritance         ErrorCode = "cyclic-inheritance"
	CodeTypeNotFound              ErrorCode = "type-not-found"
	CodeInvalidRelationshipTarget ErrorCode = "invalid-relationship-target"
	CodeEnumValueOutsideEnum      ErrorCode = "enum-value-outside-enum"
	CodeDuplicateImport           ErrorCode = "duplicate-import"
	CodeDuplicateClass            ErrorCode = "duplicate-class"
	CodeDuplicateNamespace        ErrorCode = "duplicate-namespace"
	CodeUnresolvedImport          ErrorCode = "unresolved-import"
)

// IllegalModelError is implemented by every error raised for a malformed
// model. These are terminal: callers abort the load of the offending file
// set rather than retry.
type IllegalModelError interface {
	error
	Code() ErrorCode
}

// InvalidInputError occurs when a required construction input is absent.
type InvalidInputError struct {
	error
	missing string
}

// Code returns the stable code for this error.
func (err InvalidInputError) Code() ErrorCode { return CodeInvalidInput }

// MarshalZerologObject implements zerolog object marshalling.
func (err InvalidInputError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("missing", err.missing)
}

// DetailsMetadata returns the metadata for details for this error.
func (err InvalidInputError) DetailsMetadata() map[string]string {
	return map[string]string{
		"missing_input": err.missing,
	}
}

// UnrecognizedConstructError occurs when a syntax-tree node carries a kind
// tag outside the closed declaration set.
type UnrecognizedConstructError struct {
	error
	className string
	kindTag   string
}

// Code returns the stable code for this error.
func (err UnrecognizedConstructError) Code() ErrorCode { return CodeUnrecognizedConstruct }

// KindTag returns the unknown kind tag that was encountered.
func (err UnrecognizedConstructError) KindTag() string { return err.kindTag }

// MarshalZerologObject implements zerolog object marshalling.
func (err UnrecognizedConstructError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("class", err.className).Str("kind", err.kindTag)
}

// DetailsMetadata returns the metadata for details for this error.
func (err UnrecognizedConstructError) DetailsMetadata() map[string]string {
	return map[string]string{
		"class_name": err.className,
		"kind_tag":   err.kindTag,
	}
}

// UnresolvedSuperTypeError occurs when a declared super-type name matches no
// local or imported class.
type UnresolvedSuperTypeError struct {
	error
	className     string
	superTypeName string
}

// Code returns the stable code for this error.
func (err UnresolvedSuperTypeError) Code() ErrorCode { return CodeUnresolvedSuperType }

// NotFoundSuperTypeName returns the name of the super-type not found.
func (err UnresolvedSuperTypeError) NotFoundSuperTypeName() string { return err.superTypeName }

// MarshalZerologObject implements zerolog object marshalling.
func (err UnresolvedSuperTypeError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("class", err.className).Str("superType", err.superTypeName)
}

// DetailsMetadata returns the metadata for details for this error.
func (err UnresolvedSuperTypeError) DetailsMetadata() map[string]string {
	return map[string]string{
		"class_name":      err.className,
		"super_type_name": err.superTypeName,
	}
}

// UnresolvedIdentifierError occurs when a declared identifier field name
// matches no property anywhere in the resolved chain.
type UnresolvedIdentifierError struct {
	error
	className      string
	identifierName string
}

// Code returns the stable code for this error.
func (err UnresolvedIdentifierError) Code() ErrorCode { return CodeUnresolvedIdentifier }

// MarshalZerologObject implements zerolog object marshalling.
func (err UnresolvedIdentifierError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("class", err.className).Str("identifier", err.identifierName)
}

// DetailsMetadata returns the metadata for details for this error.
func (err UnresolvedIdentifierError) DetailsMetadata() map[string]string {
	return map[string]string{
		"class_name":      err.className,
		"identifier_name": err.identifierName,
	}
}

// InvalidIdentifierTypeError occurs when the identifier field resolves but
// is not a scalar string-typed property.
type InvalidIdentifierTypeError struct {
	error
	className      string
	identifierName string
	foundTypeName  string
}

// Code returns the stable code for this error.
func (err InvalidIdentifierTypeError) Code() ErrorCode { return CodeInvalidIdentifierType }

// MarshalZerologObject implements zerolog object marshalling.
func (err InvalidIdentifierTypeError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("class", err.className).Str("identifier", err.identifierName).Str("foundType", err.foundTypeName)
}

// DetailsMetadata returns the metadata for details for this error.
func (err InvalidIdentifierTypeError) DetailsMetadata() map[string]string {
	return map[string]string{
		"class_name":      err.className,
		"identifier_name": err.identifierName,
		"found_type_name": err.foundTypeName,
	}
}

// OptionalIdentifierError occurs when the identifier field is declared
// optional.
type OptionalIdentifierError struct {
	error
	className      string
	identifierName string
}

// Code returns the stable code for this error.
func (err OptionalIdentifierError) Code() ErrorCode { return CodeOptionalIdentifier }

// MarshalZerologObject implements zerolog object marshalling.
func (err OptionalIdentifierError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("class", err.className).Str("identifier", err.identifierName)
}

// DetailsMetadata returns the metadata for details for this error.
func (err OptionalIdentifierError) DetailsMetadata() map[string]string {
	return map[string]string{
		"class_name":      err.className,
		"identifier_name": err.identifierName,
	}
}

// DuplicatePropertyError occurs when two properties in the fully resolved
// set share a name.
type DuplicatePropertyError struct {
	error
	className    string
	propertyName string
}

// Code returns the stable code for this error.
func (err DuplicatePropertyError) Code() ErrorCode { return CodeDuplicateProperty }

// MarshalZerologObject implements zerolog object marshalling.
func (err DuplicatePropertyError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("class", err.className).Str("property", err.propertyName)
}

// DetailsMetadata returns the metadata for details for this error.
func (err DuplicatePropertyError) DetailsMetadata() map[string]string {
	return map[string]string{
		"class_name":    err.className,
		"property_name": err.propertyName,
	}
}

// CyclicInheritanceError occurs when the super-type chain revisits a class.
type CyclicInheritanceError struct {
	error
	className  string
	chainNames []string
}

// Code returns the stable code for this error.
func (err CyclicInheritanceError) Code() ErrorCode { return CodeCyclicInheritance }

// MarshalZerologObject implements zerolog object marshalling.
func (err CyclicInheritanceError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("class", err.className).Str("chain", strings.Join(err.chainNames, " -> "))
}

// DetailsMetadata returns the metadata for details for this error.
func (err CyclicInheritanceError) DetailsMetadata() map[string]string {
	return map[string]string{
		"class_name":  err.className,
		"chain_names": strings.Join(err.chainNames, ","),
	}
}

// TypeNotFoundError occurs when a property references a type name that
// resolves to no known class, local or imported.
type TypeNotFoundError struct {
	error
	className    string
	propertyName string
	typeName     string
}

// Code returns the stable code for this error.
func (err TypeNotFoundError) Code() ErrorCode { return CodeTypeNotFound }

// MarshalZerologObject implements zerolog object marshalling.
func (err TypeNotFoundError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("class", err.className).Str("property", err.propertyName).Str("type", err.typeName)
}

// DetailsMetadata returns the metadata for details for this error.
func (err TypeNotFoundError) DetailsMetadata() map[string]string {
	return map[string]string{
		"class_name":    err.className,
		"property_name": err.propertyName,
		"type_name":     err.typeName,
	}
}

// InvalidRelationshipTargetError occurs when a relationship points at a
// class kind that may not be the target of a relationship.
type InvalidRelationshipTargetError struct {
	error
	className    string
	propertyName string
	targetName   string
}

// Code returns the stable code for this error.
func (err InvalidRelationshipTargetError) Code() ErrorCode { return CodeInvalidRelationshipTarget }

// MarshalZerologObject implements zerolog object marshalling.
func (err InvalidRelationshipTargetError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("class", err.className).Str("property", err.propertyName).Str("target", err.targetName)
}

// DetailsMetadata returns the metadata for details for this error.
func (err InvalidRelationshipTargetError) DetailsMetadata() map[string]string {
	return map[string]string{
		"class_name":    err.className,
		"property_name": err.propertyName,
		"target_name":   err.targetName,
	}
}

// EnumValueOutsideEnumError occurs when an enum value member is declared on
// a non-enum class.
type EnumValueOutsideEnumError struct {
	error
	className string
	valueName string
}

// Code returns the stable code for this error.
func (err EnumValueOutsideEnumError) Code() ErrorCode { return CodeEnumValueOutsideEnum }

// MarshalZerologObject implements zerolog object marshalling.
func (err EnumValueOutsideEnumError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("class", err.className).Str("value", err.valueName)
}

// DetailsMetadata returns the metadata for details for this error.
func (err EnumValueOutsideEnumError) DetailsMetadata() map[string]string {
	return map[string]string{
		"class_name": err.className,
		"value_name": err.valueName,
	}
}

// DuplicateImportError occurs when two imports in a namespace share a short
// name but reference different classes.
type DuplicateImportError struct {
	error
	namespace string
	shortName string
}

// Code returns the stable code for this error.
func (err DuplicateImportError) Code() ErrorCode { return CodeDuplicateImport }

// MarshalZerologObject implements zerolog object marshalling.
func (err DuplicateImportError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("namespace", err.namespace).Str("import", err.shortName)
}

// DetailsMetadata returns the metadata for details for this error.
func (err DuplicateImportError) DetailsMetadata() map[string]string {
	return map[string]string{
		"namespace":  err.namespace,
		"short_name": err.shortName,
	}
}

// DuplicateClassError occurs when two classes in a namespace share a name.
type DuplicateClassError struct {
	error
	namespace string
	className string
}

// Code returns the stable code for this error.
func (err DuplicateClassError) Code() ErrorCode { return CodeDuplicateClass }

// MarshalZerologObject implements zerolog object marshalling.
func (err DuplicateClassError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("namespace", err.namespace).Str("class", err.className)
}

// DetailsMetadata returns the metadata for details for this error.
func (err DuplicateClassError) DetailsMetadata() map[string]string {
	return map[string]string{
		"namespace":  err.namespace,
		"class_name": err.className,
	}
}

// DuplicateNamespaceError occurs when two model files declare the same
// namespace.
type DuplicateNamespaceError struct {
	error
	namespace string
}

// Code returns the stable code for this error.
func (err DuplicateNamespaceError) Code() ErrorCode { return CodeDuplicateNamespace }

// MarshalZerologObject implements zerolog object marshalling.
func (err DuplicateNamespaceError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("namespace", err.namespace)
}

// DetailsMetadata returns the metadata for details for this error.
func (err DuplicateNamespaceError) DetailsMetadata() map[string]string {
	return map[string]string{
		"namespace": err.namespace,
	}
}

// UnresolvedImportError occurs when a short name is looked up in the import
// table but no import declares it.
type UnresolvedImportError struct {
	error
	namespace string
	shortName string
}

// Code returns the stable code for this error.
func (err UnresolvedImportError) Code() ErrorCode { return CodeUnresolvedImport }

// MarshalZerologObject implements zerolog object marshalling.
func (err UnresolvedImportError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("namespace", err.namespace).Str("import", err.shortName)
}

// DetailsMetadata returns the metadata for details for this error.
func (err UnresolvedImportError) DetailsMetadata() map[string]string {
	return map[string]string{
		"namespace":  err.namespace,
		"short_name": err.shortName,
	}
}

// NewInvalidInputErr constructs a new invalid input error.
func NewInvalidInputErr(missing string) error {
	return InvalidInputError{
		error:   fmt.Errorf("required input `%s` was not provided", missing),
		missing: missing,
	}
}

// NewManagerSealedErr constructs an error indicating that the registry is
// read-only once validated.
func NewManagerSealedErr() error {
	return InvalidInputError{
		error:   fmt.Errorf("model files cannot be added once the registry has been validated"),
		missing: "mutable model manager",
	}
}

// NewForeignModelFileErr constructs an error indicating that a model file
// was built against a different registry.
func NewForeignModelFileErr(namespace string) error {
	return InvalidInputError{
		error:   fmt.Errorf("model file `%s` was built for a different registry", namespace),
		missing: "model file built for this manager",
	}
}

// NewUnrecognizedConstructErr constructs an error indicating that a
// declaration carried an unknown kind tag.
func NewUnrecognizedConstructErr(className string, kindTag string) error {
	return UnrecognizedConstructError{
		error:     fmt.Errorf("unrecognized declaration kind `%s` under class `%s`", kindTag, className),
		className: className,
		kindTag:   kindTag,
	}
}

// NewUnresolvedSuperTypeErr constructs an error indicating that a declared
// super-type could not be resolved. When one of the known type names is
// close to the missing name, the message suggests it.
func NewUnresolvedSuperTypeErr(className string, superTypeName string, knownTypeNames []string) error {
	return UnresolvedSuperTypeError{
		error:         fmt.Errorf("super type `%s` of class `%s` was not found%s", superTypeName, className, maybeSuggestion(superTypeName, knownTypeNames)),
		className:     className,
		superTypeName: superTypeName,
	}
}

// NewUnresolvedIdentifierErr constructs an error indicating that the
// identifier field was not found in the resolved property set.
func NewUnresolvedIdentifierErr(className string, identifierName string) error {
	return UnresolvedIdentifierError{
		error:          fmt.Errorf("identifying field `%s` of class `%s` does not resolve to a property", identifierName, className),
		className:      className,
		identifierName: identifierName,
	}
}

// NewInvalidIdentifierTypeErr constructs an error indicating that the
// identifier field is not a scalar String property.
func NewInvalidIdentifierTypeErr(className string, identifierName string, foundTypeName string) error {
	return InvalidIdentifierTypeError{
		error:          fmt.Errorf("identifying field `%s` of class `%s` must be of type String, found `%s`", identifierName, className, foundTypeName),
		className:      className,
		identifierName: identifierName,
		foundTypeName:  foundTypeName,
	}
}

// NewOptionalIdentifierErr constructs an error indicating that the
// identifier field was declared optional.
func NewOptionalIdentifierErr(className string, identifierName string) error {
	return OptionalIdentifierError{
		error:          fmt.Errorf("identifying field `%s` of class `%s` cannot be optional", identifierName, className),
		className:      className,
		identifierName: identifierName,
	}
}

// NewDuplicatePropertyErr constructs an error indicating that a property
// name repeats within the fully resolved set of a class.
func NewDuplicatePropertyErr(className string, propertyName string) error {
	return DuplicatePropertyError{
		error:        fmt.Errorf("found duplicate property name `%s` under class `%s`", propertyName, className),
		className:    className,
		propertyName: propertyName,
	}
}

// NewCyclicInheritanceErr constructs an error indicating that the
// super-type chain of a class revisits a class.
func NewCyclicInheritanceErr(className string, chainNames []string) error {
	return CyclicInheritanceError{
		error:      fmt.Errorf("class `%s` participates in a super-type cycle: %s", className, strings.Join(chainNames, " -> ")),
		className:  className,
		chainNames: chainNames,
	}
}

// NewTypeNotFoundErr constructs an error indicating that a property
// references an unknown type.
func NewTypeNotFoundErr(className string, propertyName string, typeName string, knownTypeNames []string) error {
	return TypeNotFoundError{
		error:        fmt.Errorf("type `%s` of property `%s` under class `%s` was not found%s", typeName, propertyName, className, maybeSuggestion(typeName, knownTypeNames)),
		className:    className,
		propertyName: propertyName,
		typeName:     typeName,
	}
}

// NewInvalidRelationshipTargetErr constructs an error indicating that a
// relationship points at a non-relationship-target class.
func NewInvalidRelationshipTargetErr(className string, propertyName string, targetName string) error {
	return InvalidRelationshipTargetError{
		error:        fmt.Errorf("relationship `%s` under class `%s` references `%s`, which is not a relationship target", propertyName, className, targetName),
		className:    className,
		propertyName: propertyName,
		targetName:   targetName,
	}
}

// NewEnumValueOutsideEnumErr constructs an error indicating that an enum
// value was declared on a non-enum class.
func NewEnumValueOutsideEnumErr(className string, valueName string) error {
	return EnumValueOutsideEnumError{
		error:     fmt.Errorf("enum value `%s` declared under non-enum class `%s`", valueName, className),
		className: className,
		valueName: valueName,
	}
}

// NewDuplicateImportErr constructs an error indicating that two imports
// collide on a short name.
func NewDuplicateImportErr(namespace string, shortName string) error {
	return DuplicateImportError{
		error:     fmt.Errorf("found conflicting imports for name `%s` under namespace `%s`", shortName, namespace),
		namespace: namespace,
		shortName: shortName,
	}
}

// NewDuplicateClassErr constructs an error indicating that a class name
// repeats within a namespace.
func NewDuplicateClassErr(namespace string, className string) error {
	return DuplicateClassError{
		error:     fmt.Errorf("found duplicate class name `%s` under namespace `%s`", className, namespace),
		namespace: namespace,
		className: className,
	}
}

// NewDuplicateNamespaceErr constructs an error indicating that a namespace
// was registered more than once.
func NewDuplicateNamespaceErr(namespace string) error {
	return DuplicateNamespaceError{
		error:     fmt.Errorf("namespace `%s` is already registered", namespace),
		namespace: namespace,
	}
}

// NewUnresolvedImportErr constructs an error indicating that a short name
// has no entry in the import table.
func NewUnresolvedImportErr(namespace string, shortName string) error {
	return UnresolvedImportError{
		error:     fmt.Errorf("name `%s` is not imported under namespace `%s`", shortName, namespace),
		namespace: namespace,
		shortName: shortName,
	}
}

// maxSuggestionDistance bounds how far a known name may be from the missing
// one before it is not worth suggesting.
const maxSuggestionDistance = 4

func maybeSuggestion(missing string, known []string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, candidate := range known {
		if candidate == missing {
			continue
		}
		if distance := fuzzy.LevenshteinDistance(missing, candidate); distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("; did you mean `%s`?", best)
}

var _ = []IllegalModelError{
	InvalidInputError{},
	UnrecognizedConstructError{},
	UnresolvedSuperTypeError{},
	UnresolvedIdentifierError{},
	InvalidIdentifierTypeError{},
	OptionalIdentifierError{},
	DuplicatePropertyError{},
	CyclicInheritanceError{},
	TypeNotFoundError{},
	InvalidRelationshipTargetError{},
	EnumValueOutsideEnumError{},
	DuplicateImportError{},
	DuplicateClassError{},
	DuplicateNamespaceError{},
	UnresolvedImportError{},
}

var _ = []modelerrors.HasMetadata{
	InvalidInputError{},
	UnresolvedSuperTypeError{},
	DuplicatePropertyError{},
}
