// Package generator produces a canonical CML text view of model files and
// class declarations, for tooling and error messages. It is the only
// externalization of the model graph: the graph itself is self-referential
// (class to namespace to registry) and is never serialized whole.
package generator

import (
	"fmt"

	"github.com/cmlang/cml/pkg/model"
)

// GenerateModelFileSource emits the canonical text for a whole namespace:
// its namespace header, imports and every declaration in declaration order.
func GenerateModelFileSource(file *model.ModelFile) string {
	sg := &sourceGenerator{hasNewline: true}
	sg.emitModelFile(file)
	return sg.buf.String()
}

// GenerateDeclarationSource emits the canonical text for a single class
// declaration.
func GenerateDeclarationSource(decl *model.ClassDeclaration) string {
	sg := &sourceGenerator{hasNewline: true}
	sg.emitDeclaration(decl)
	return sg.buf.String()
}

func (sg *sourceGenerator) emitModelFile(file *model.ModelFile) {
	sg.append("namespace ")
	sg.append(file.Namespace())
	sg.appendLine()

	imports := file.Imports()
	if len(imports) > 0 {
		sg.ensureBlankLine()
		for _, imported := range imports {
			sg.append("import ")
			sg.append(imported)
			sg.appendLine()
		}
	}

	for _, decl := range file.Declarations() {
		sg.ensureBlankLine()
		sg.emitDeclaration(decl)
	}
}

func (sg *sourceGenerator) emitDeclaration(decl *model.ClassDeclaration) {
	if decl.IsAbstract() {
		sg.append("abstract ")
	}

	sg.append(decl.Kind().String())
	sg.append(" ")
	sg.append(decl.Name())

	if identifier := decl.OwnIdentifierFieldName(); identifier != "" {
		sg.append(" identified by ")
		sg.append(identifier)
	}

	if super := decl.SuperTypeName(); super != "" {
		sg.append(" extends ")
		sg.append(super)
	}

	properties := decl.GetOwnProperties()
	if len(properties) == 0 {
		sg.append(" {}")
		sg.appendLine()
		return
	}

	sg.append(" {")
	sg.appendLine()
	sg.indent()

	for _, property := range properties {
		sg.emitProperty(property)
	}

	sg.dedent()
	sg.append("}")
	sg.appendLine()
}

func (sg *sourceGenerator) emitProperty(property model.Property) {
	switch p := property.(type) {
	case *model.Field:
		sg.append("o ")
		sg.append(p.TypeName())
		if p.IsArray() {
			sg.append("[]")
		}
		sg.append(" ")
		sg.append(p.Name())
		if p.IsOptional() {
			sg.append(" optional")
		}

	case *model.EnumValue:
		sg.append("o ")
		sg.append(p.Name())

	case *model.Relationship:
		sg.append("--> ")
		sg.append(p.TypeName())
		if p.IsArray() {
			sg.append("[]")
		}
		sg.append(" ")
		sg.append(p.Name())
		if p.IsOptional() {
			sg.append(" optional")
		}

	default:
		sg.append(fmt.Sprintf("/* unknown property kind %v */", property.Kind()))
	}

	sg.appendLine()
}
