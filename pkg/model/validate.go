package model

import (
	"github.com/cmlang/cml/internal/util"
	"github.com/cmlang/cml/pkg/ast"
)

// validate checks the declaration against the fully loaded graph. It runs,
// in order: super-type resolution (with a cycle guard), identifier
// validation, duplicate-name detection over the resolved property set, and
// per-property constraints. The first failure aborts validation of this
// class.
func (cd *ClassDeclaration) validate() error {
	if _, err := cd.resolveSuperChain(); err != nil {
		return err
	}

	if err := cd.validateIdentifier(); err != nil {
		return err
	}

	properties, err := cd.GetProperties()
	if err != nil {
		return err
	}
	seen := util.NewSet[string]()
	for _, property := range properties {
		if !seen.Add(property.Name()) {
			return NewDuplicatePropertyErr(cd.name, property.Name())
		}
	}

	for _, property := range cd.ownProperties {
		if err := property.validate(cd); err != nil {
			return err
		}
	}

	return nil
}

// resolveSuperChain walks the super-type chain to its root, resolving every
// link and guarding against cycles with a visited set. It returns the
// resolved chain, nearest super-type first, excluding the class itself.
func (cd *ClassDeclaration) resolveSuperChain() ([]*ClassDeclaration, error) {
	visited := util.NewSet[string](cd.GetFullyQualifiedName())
	chainNames := []string{cd.GetFullyQualifiedName()}

	var chain []*ClassDeclaration
	current := cd
	for current.superType != "" {
		super, err := current.resolveSuperType()
		if err != nil {
			return nil, err
		}

		chainNames = append(chainNames, super.GetFullyQualifiedName())
		if !visited.Add(super.GetFullyQualifiedName()) {
			return nil, NewCyclicInheritanceErr(cd.name, chainNames)
		}

		chain = append(chain, super)
		current = super
	}
	return chain, nil
}

// validateIdentifier enforces the identifying-field constraints: the name,
// declared here or anywhere in the chain, must resolve to a property in the
// resolved set, be of scalar String type and not be optional.
func (cd *ClassDeclaration) validateIdentifier() error {
	identifierName, err := cd.GetIdentifierFieldName()
	if err != nil {
		return err
	}
	if identifierName == "" {
		return nil
	}

	property, err := cd.GetProperty(identifierName)
	if err != nil {
		return err
	}
	if property == nil {
		return NewUnresolvedIdentifierErr(cd.name, identifierName)
	}

	field, ok := property.(*Field)
	if !ok || field.TypeName() != ast.TypeString {
		return NewInvalidIdentifierTypeErr(cd.name, identifierName, property.TypeName())
	}
	if field.IsArray() {
		return NewInvalidIdentifierTypeErr(cd.name, identifierName, field.TypeName()+"[]")
	}
	if field.IsOptional() {
		return NewOptionalIdentifierErr(cd.name, identifierName)
	}
	return nil
}
