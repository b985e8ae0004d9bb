package model

import (
	"context"
	"slices"
	"strings"

	"github.com/jzelinskie/stringz"

	log "github.com/cmlang/cml/internal/logging"
	"github.com/cmlang/cml/pkg/ast"
)

// Phase tags how far a model file has progressed through the two-phase
// build: structural construction first, cross-file validation second.
type Phase int

const (
	// PhaseStructural means the file's declarations are built but no
	// cross-file reference has been resolved.
	PhaseStructural Phase = iota

	// PhaseValidated means the file passed the full-graph validation pass.
	PhaseValidated
)

// String describes the phase for diagnostics.
func (p Phase) String() string {
	switch p {
	case PhaseStructural:
		return "structural"
	case PhaseValidated:
		return "validated"
	default:
		return "unknown"
	}
}

// ModelFile owns the class declarations sharing one namespace, plus the
// import table mapping short names to fully-qualified names in sibling
// namespaces.
type ModelFile struct {
	manager      *ModelManager
	namespace    string
	imports      map[string]string
	declarations []*ClassDeclaration
	declsByName  map[string]*ClassDeclaration
	phase        Phase
}

// NewModelFile builds a namespace container and all of its class
// declarations structurally from a parsed model document. Imports and
// super-types are recorded by name only; resolution waits until the
// registry drives validation over the complete set of files.
func NewModelFile(manager *ModelManager, node *ast.ModelNode) (*ModelFile, error) {
	if manager == nil {
		return nil, NewInvalidInputErr("model manager")
	}
	if node == nil {
		return nil, NewInvalidInputErr("model node")
	}
	if node.Namespace == "" {
		return nil, NewInvalidInputErr("namespace")
	}

	mf := &ModelFile{
		manager:     manager,
		namespace:   node.Namespace,
		imports:     make(map[string]string, len(node.Imports)),
		declsByName: make(map[string]*ClassDeclaration, len(node.Classes)),
		phase:       PhaseStructural,
	}

	for _, imported := range node.Imports {
		short := imported
		if idx := strings.LastIndex(imported, "."); idx >= 0 {
			short = imported[idx+1:]
		}
		if existing, ok := mf.imports[short]; ok && existing != imported {
			return nil, NewDuplicateImportErr(mf.namespace, short)
		}
		mf.imports[short] = imported
	}

	for _, classNode := range node.Classes {
		decl, err := NewClassDeclaration(mf, classNode)
		if err != nil {
			return nil, err
		}
		if _, ok := mf.declsByName[decl.Name()]; ok {
			return nil, NewDuplicateClassErr(mf.namespace, decl.Name())
		}
		mf.declarations = append(mf.declarations, decl)
		mf.declsByName[decl.Name()] = decl
	}

	return mf, nil
}

// Namespace returns the namespace shared by this file's declarations.
func (mf *ModelFile) Namespace() string { return mf.namespace }

// Phase returns how far this file has progressed through the two-phase
// build.
func (mf *ModelFile) Phase() Phase { return mf.phase }

// Declarations returns the file's class declarations in declaration order.
func (mf *ModelFile) Declarations() []*ClassDeclaration {
	return slices.Clone(mf.declarations)
}

// Imports returns the fully-qualified names in the import table, sorted.
func (mf *ModelFile) Imports() []string {
	fqns := make([]string, 0, len(mf.imports))
	for _, fqn := range mf.imports {
		fqns = append(fqns, fqn)
	}
	slices.Sort(fqns)
	return fqns
}

// GetType returns the local declaration with the given short name.
func (mf *ModelFile) GetType(name string) (*ClassDeclaration, bool) {
	decl, ok := mf.declsByName[name]
	return decl, ok
}

// IsImportedType returns true if the short name appears in the import
// table.
func (mf *ModelFile) IsImportedType(name string) bool {
	_, ok := mf.imports[name]
	return ok
}

// ResolveImport returns the fully-qualified name the short name was
// imported as.
func (mf *ModelFile) ResolveImport(name string) (string, error) {
	fqn, ok := mf.imports[name]
	if !ok {
		return "", NewUnresolvedImportErr(mf.namespace, name)
	}
	return fqn, nil
}

// resolveTypeName resolves a short type name: imported names go through the
// registry, everything else is looked up locally.
func (mf *ModelFile) resolveTypeName(name string) (*ClassDeclaration, bool) {
	if mf.IsImportedType(name) {
		fqn := mf.imports[name]
		return mf.manager.GetType(fqn)
	}
	return mf.GetType(name)
}

// knownTypeNames returns every short name resolvable from this file, used
// for suggestions on resolution failures.
func (mf *ModelFile) knownTypeNames() []string {
	names := make([]string, 0, len(mf.declarations)+len(mf.imports))
	for _, decl := range mf.declarations {
		names = append(names, decl.Name())
	}
	for short := range mf.imports {
		names = append(names, short)
	}
	slices.Sort(names)
	return stringz.Dedup(names)
}

// validate runs the semantic validation pass over every declaration in the
// file, fail-fast, and marks the file validated. Only the registry may
// drive this, once every file in the set has completed its structural
// phase.
func (mf *ModelFile) validate(ctx context.Context) error {
	for _, decl := range mf.declarations {
		if err := decl.validate(); err != nil {
			return err
		}
	}

	mf.phase = PhaseValidated
	log.Ctx(ctx).Debug().
		Str("namespace", mf.namespace).
		Int("classes", len(mf.declarations)).
		Msg("validated model file")
	return nil
}
