package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmlang/cml/pkg/ast"
	"github.com/cmlang/cml/pkg/model"
)

func buildFleet(t *testing.T) *model.ModelManager {
	t.Helper()

	manager := model.NewModelManager()
	fleet, err := model.NewModelFile(manager, &ast.ModelNode{
		Namespace: "org.fleet",
		Imports:   []string{"org.people.Driver"},
		Classes: []*ast.ClassNode{
			{
				Name:            "Vehicle",
				Kind:            ast.ClassKindAsset,
				Abstract:        true,
				IdentifierField: "vin",
				Members: []*ast.MemberNode{
					{Kind: ast.MemberKindField, Name: "vin", Type: ast.TypeString},
				},
			},
			{
				Name:      "Truck",
				Kind:      ast.ClassKindAsset,
				SuperType: "Vehicle",
				Members: []*ast.MemberNode{
					{Kind: ast.MemberKindField, Name: "mileage", Type: ast.TypeLong, Optional: true},
					{Kind: ast.MemberKindField, Name: "plates", Type: ast.TypeString, Array: true},
					{Kind: ast.MemberKindRelationship, Name: "driver", Type: "Driver"},
				},
			},
			{
				Name: "Status",
				Kind: ast.ClassKindEnum,
				Members: []*ast.MemberNode{
					{Kind: ast.MemberKindEnumValue, Name: "ACTIVE"},
					{Kind: ast.MemberKindEnumValue, Name: "RETIRED"},
				},
			},
			{
				Name: "Garage",
				Kind: ast.ClassKindAsset,
			},
		},
	})
	require.NoError(t, err)
	require.NoError(t, manager.AddModelFile(fleet))

	people, err := model.NewModelFile(manager, &ast.ModelNode{
		Namespace: "org.people",
		Classes: []*ast.ClassNode{
			{
				Name: "Driver",
				Kind: ast.ClassKindParticipant,
				Members: []*ast.MemberNode{
					{Kind: ast.MemberKindField, Name: "license", Type: ast.TypeString},
				},
			},
		},
	})
	require.NoError(t, err)
	require.NoError(t, manager.AddModelFile(people))
	require.NoError(t, manager.ValidateModels(context.Background()))
	return manager
}

func TestGenerateModelFileSource(t *testing.T) {
	manager := buildFleet(t)
	fleet, ok := manager.GetModelFile("org.fleet")
	require.True(t, ok)

	expected := `namespace org.fleet

import org.people.Driver

abstract asset Vehicle identified by vin {
	o String vin
}

asset Truck extends Vehicle {
	o Long mileage optional
	o String[] plates
	--> Driver driver
}

enum Status {
	o ACTIVE
	o RETIRED
}

asset Garage {}
`
	require.Equal(t, expected, GenerateModelFileSource(fleet))
}

func TestGenerateDeclarationSource(t *testing.T) {
	manager := buildFleet(t)
	truck, ok := manager.GetType("org.fleet.Truck")
	require.True(t, ok)

	expected := `asset Truck extends Vehicle {
	o Long mileage optional
	o String[] plates
	--> Driver driver
}
`
	require.Equal(t, expected, GenerateDeclarationSource(truck))
}
