package model

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	log "github.com/cmlang/cml/internal/logging"
)

// ModelManager is the registry owning every loaded namespace container. It
// resolves fully-qualified names to class declarations and drives the
// validation pass once the full set of files is loaded. The registry is
// append-only during load and read-only during and after validation.
type ModelManager struct {
	mu        sync.RWMutex
	files     map[string]*ModelFile
	order     []string
	validated bool
}

// NewModelManager returns an empty registry.
func NewModelManager() *ModelManager {
	return &ModelManager{
		files: make(map[string]*ModelFile),
	}
}

// AddModelFile registers a structurally built namespace container. Adding
// is rejected once the registry has been validated, and namespaces must be
// unique.
func (mm *ModelManager) AddModelFile(file *ModelFile) error {
	if file == nil {
		return NewInvalidInputErr("model file")
	}
	if file.manager != mm {
		return NewForeignModelFileErr(file.Namespace())
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()

	if mm.validated {
		return NewManagerSealedErr()
	}
	if _, ok := mm.files[file.Namespace()]; ok {
		return NewDuplicateNamespaceErr(file.Namespace())
	}

	mm.files[file.Namespace()] = file
	mm.order = append(mm.order, file.Namespace())
	return nil
}

// GetModelFile returns the container for the given namespace.
func (mm *ModelManager) GetModelFile(namespace string) (*ModelFile, bool) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	file, ok := mm.files[namespace]
	return file, ok
}

// ModelFiles returns every registered container, in registration order.
func (mm *ModelManager) ModelFiles() []*ModelFile {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	files := make([]*ModelFile, 0, len(mm.order))
	for _, namespace := range mm.order {
		files = append(files, mm.files[namespace])
	}
	return files
}

// GetType resolves a fully-qualified `namespace.ClassName` to its
// declaration.
func (mm *ModelManager) GetType(fullyQualifiedName string) (*ClassDeclaration, bool) {
	idx := strings.LastIndex(fullyQualifiedName, ".")
	if idx <= 0 || idx == len(fullyQualifiedName)-1 {
		return nil, false
	}

	file, ok := mm.GetModelFile(fullyQualifiedName[:idx])
	if !ok {
		return nil, false
	}
	return file.GetType(fullyQualifiedName[idx+1:])
}

// AllDeclarations returns every declaration in the registry, grouped by
// file in registration order.
func (mm *ModelManager) AllDeclarations() []*ClassDeclaration {
	var declarations []*ClassDeclaration
	for _, file := range mm.ModelFiles() {
		declarations = append(declarations, file.declarations...)
	}
	return declarations
}

// IsValidated returns true once ValidateModels has completed successfully.
func (mm *ModelManager) IsValidated() bool {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.validated
}

// ValidateModels runs the semantic validation pass over every registered
// file. It is the only entry point for phase two: every file reachable via
// any import is guaranteed to have completed its structural phase, because
// files only enter the registry fully constructed. Validation is read-only
// against the shared graph, so independent files are checked in parallel.
func (mm *ModelManager) ValidateModels(ctx context.Context) error {
	files := mm.ModelFiles()

	group, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		file := file
		group.Go(func() error {
			return file.validate(ctx)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	mm.mu.Lock()
	mm.validated = true
	mm.mu.Unlock()

	log.Ctx(ctx).Info().
		Int("namespaces", len(files)).
		Msg("validated model set")
	return nil
}
