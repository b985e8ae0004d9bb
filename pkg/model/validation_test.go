package model

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmlang/cml/pkg/ast"
)

// requireCode asserts that err carries the given illegal-model code.
func requireCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	require.Error(t, err)

	var imErr IllegalModelError
	require.ErrorAs(t, err, &imErr)
	require.Equal(t, code, imErr.Code())
}

func TestValidateModels(t *testing.T) {
	testCases := []struct {
		name          string
		documents     []*ast.ModelNode
		expectedCode  ErrorCode
		errorContains string
	}{
		{
			name:      "valid single namespace",
			documents: []*ast.ModelNode{zooModel()},
		},
		{
			name: "valid cross-namespace inheritance via import",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Imports:   []string{"org.creature.Wolf"},
					Classes: []*ast.ClassNode{
						{Name: "Dog", Kind: ast.ClassKindConcept, SuperType: "Wolf", Members: []*ast.MemberNode{field("collar", ast.TypeString)}},
					},
				},
				{
					Namespace: "org.creature",
					Classes: []*ast.ClassNode{
						{Name: "Wolf", Kind: ast.ClassKindConcept, Members: []*ast.MemberNode{field("packName", ast.TypeString)}},
					},
				},
			},
		},
		{
			name: "unresolved super type",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{Name: "Dog", Kind: ast.ClassKindConcept, SuperType: "Wolf"},
					},
				},
			},
			expectedCode:  CodeUnresolvedSuperType,
			errorContains: "super type `Wolf` of class `Dog` was not found",
		},
		{
			name: "unresolved super type suggests a close name",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{Name: "Wolff", Kind: ast.ClassKindConcept},
						{Name: "Dog", Kind: ast.ClassKindConcept, SuperType: "Wolf"},
					},
				},
			},
			expectedCode:  CodeUnresolvedSuperType,
			errorContains: "did you mean `Wolff`?",
		},
		{
			name: "super type imported but not loaded",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Imports:   []string{"org.creature.Wolf"},
					Classes: []*ast.ClassNode{
						{Name: "Dog", Kind: ast.ClassKindConcept, SuperType: "Wolf"},
					},
				},
			},
			expectedCode: CodeUnresolvedSuperType,
		},
		{
			name: "self cycle",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{Name: "Ouroboros", Kind: ast.ClassKindConcept, SuperType: "Ouroboros"},
					},
				},
			},
			expectedCode: CodeCyclicInheritance,
		},
		{
			name: "cycle across namespaces",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.a",
					Imports:   []string{"org.b.Second"},
					Classes: []*ast.ClassNode{
						{Name: "First", Kind: ast.ClassKindConcept, SuperType: "Second"},
					},
				},
				{
					Namespace: "org.b",
					Imports:   []string{"org.a.First"},
					Classes: []*ast.ClassNode{
						{Name: "Second", Kind: ast.ClassKindConcept, SuperType: "First"},
					},
				},
			},
			expectedCode:  CodeCyclicInheritance,
			errorContains: "super-type cycle",
		},
		{
			name: "optional identifier",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{
							Name:            "Person",
							Kind:            ast.ClassKindParticipant,
							IdentifierField: "ssn",
							Members:         []*ast.MemberNode{optionalField("ssn", ast.TypeString)},
						},
					},
				},
			},
			expectedCode:  CodeOptionalIdentifier,
			errorContains: "cannot be optional",
		},
		{
			name: "unresolved identifier",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{
							Name:            "Person",
							Kind:            ast.ClassKindParticipant,
							IdentifierField: "email",
							Members:         []*ast.MemberNode{field("ssn", ast.TypeString)},
						},
					},
				},
			},
			expectedCode: CodeUnresolvedIdentifier,
		},
		{
			name: "identifier of non-string type",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{
							Name:            "Person",
							Kind:            ast.ClassKindParticipant,
							IdentifierField: "age",
							Members:         []*ast.MemberNode{field("age", ast.TypeInteger)},
						},
					},
				},
			},
			expectedCode:  CodeInvalidIdentifierType,
			errorContains: "must be of type String",
		},
		{
			name: "identifier of array type",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{
							Name:            "Person",
							Kind:            ast.ClassKindParticipant,
							IdentifierField: "aliases",
							Members: []*ast.MemberNode{
								{Kind: ast.MemberKindField, Name: "aliases", Type: ast.TypeString, Array: true},
							},
						},
					},
				},
			},
			expectedCode: CodeInvalidIdentifierType,
		},
		{
			name: "identifier resolving to a relationship",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{Name: "Keeper", Kind: ast.ClassKindParticipant, IdentifierField: "badge", Members: []*ast.MemberNode{field("badge", ast.TypeString)}},
						{
							Name:            "Cage",
							Kind:            ast.ClassKindAsset,
							IdentifierField: "keeper",
							Members:         []*ast.MemberNode{relationship("keeper", "Keeper")},
						},
					},
				},
			},
			expectedCode: CodeInvalidIdentifierType,
		},
		{
			name: "identifier inherited from super type validates on subclass",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{
							Name:            "Animal",
							Kind:            ast.ClassKindConcept,
							Abstract:        true,
							IdentifierField: "name",
							Members:         []*ast.MemberNode{field("name", ast.TypeString)},
						},
						{Name: "Dog", Kind: ast.ClassKindConcept, SuperType: "Animal"},
					},
				},
			},
		},
		{
			name: "duplicate own property",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.hr",
					Classes: []*ast.ClassNode{
						{
							Name: "Employee",
							Kind: ast.ClassKindParticipant,
							Members: []*ast.MemberNode{
								field("salary", ast.TypeDouble),
								field("salary", ast.TypeDouble),
							},
						},
					},
				},
			},
			expectedCode:  CodeDuplicateProperty,
			errorContains: "duplicate property name `salary` under class `Employee`",
		},
		{
			name: "duplicate property via inheritance",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{Name: "Animal", Kind: ast.ClassKindConcept, Members: []*ast.MemberNode{field("name", ast.TypeString)}},
						{Name: "Dog", Kind: ast.ClassKindConcept, SuperType: "Animal", Members: []*ast.MemberNode{field("name", ast.TypeString)}},
					},
				},
			},
			expectedCode: CodeDuplicateProperty,
		},
		{
			name: "field of unknown declared type",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{Name: "Dog", Kind: ast.ClassKindConcept, Members: []*ast.MemberNode{field("color", "Color")}},
					},
				},
			},
			expectedCode: CodeTypeNotFound,
		},
		{
			name: "field of declared enum type",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{Name: "Color", Kind: ast.ClassKindEnum, Members: []*ast.MemberNode{enumValue("BROWN"), enumValue("GREY")}},
						{Name: "Dog", Kind: ast.ClassKindConcept, Members: []*ast.MemberNode{field("color", "Color")}},
					},
				},
			},
		},
		{
			name: "relationship to unknown type",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.fleet",
					Classes: []*ast.ClassNode{
						{Name: "Truck", Kind: ast.ClassKindAsset, Members: []*ast.MemberNode{relationship("owner", "Owner")}},
					},
				},
			},
			expectedCode: CodeTypeNotFound,
		},
		{
			name: "relationship to non-target kind",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.fleet",
					Classes: []*ast.ClassNode{
						{Name: "Address", Kind: ast.ClassKindConcept, Members: []*ast.MemberNode{field("street", ast.TypeString)}},
						{Name: "Truck", Kind: ast.ClassKindAsset, Members: []*ast.MemberNode{relationship("garage", "Address")}},
					},
				},
			},
			expectedCode:  CodeInvalidRelationshipTarget,
			errorContains: "not a relationship target",
		},
		{
			name: "relationship to imported target",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.fleet",
					Imports:   []string{"org.people.Driver"},
					Classes: []*ast.ClassNode{
						{Name: "Truck", Kind: ast.ClassKindAsset, Members: []*ast.MemberNode{relationship("driver", "Driver")}},
					},
				},
				{
					Namespace: "org.people",
					Classes: []*ast.ClassNode{
						{Name: "Driver", Kind: ast.ClassKindParticipant, Members: []*ast.MemberNode{field("license", ast.TypeString)}},
					},
				},
			},
		},
		{
			name: "enum value on non-enum class",
			documents: []*ast.ModelNode{
				{
					Namespace: "org.zoo",
					Classes: []*ast.ClassNode{
						{Name: "Dog", Kind: ast.ClassKindConcept, Members: []*ast.MemberNode{enumValue("LOUD")}},
					},
				},
			},
			expectedCode: CodeEnumValueOutsideEnum,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			manager := mustLoadModels(t, tc.documents...)
			err := manager.ValidateModels(context.Background())

			if tc.expectedCode == "" {
				require.NoError(t, err)
				require.True(t, manager.IsValidated())
				for _, file := range manager.ModelFiles() {
					require.Equal(t, PhaseValidated, file.Phase())
				}
				return
			}

			requireCode(t, err, tc.expectedCode)
			if tc.errorContains != "" {
				require.ErrorContains(t, err, tc.errorContains)
			}
			require.False(t, manager.IsValidated())
		})
	}
}

func TestValidationDoesNotMutateDeclarations(t *testing.T) {
	manager := mustLoadModels(t, zooModel())

	person, ok := manager.GetType("org.zoo.Person")
	require.True(t, ok)
	before := person.GetOwnProperties()

	require.NoError(t, manager.ValidateModels(context.Background()))
	require.Equal(t, before, person.GetOwnProperties())
	require.Equal(t, "Animal", person.SuperTypeName())
}

func TestConcurrentQueriesAfterValidation(t *testing.T) {
	manager := mustLoadModels(t, zooModel())
	require.NoError(t, manager.ValidateModels(context.Background()))

	var wg sync.WaitGroup
	errs := make(chan error, 800)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				for _, name := range []string{"org.zoo.Animal", "org.zoo.Person"} {
					decl, ok := manager.GetType(name)
					if !ok {
						continue
					}
					_, err := decl.GetProperties()
					errs <- err
					_, err = decl.GetIdentifierFieldName()
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err, "expected no errors in concurrent query calls")
	}
}
