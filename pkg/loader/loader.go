// Package loader reads YAML model documents and populates a validated
// model registry from them.
package loader

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	log "github.com/cmlang/cml/internal/logging"
	"github.com/cmlang/cml/pkg/ast"
	"github.com/cmlang/cml/pkg/model"
	"github.com/cmlang/cml/pkg/modelerrors"
)

// ParseModelDocument attempts to parse the given contents as a YAML model
// document.
func ParseModelDocument(contents []byte) (*ast.ModelNode, error) {
	node := ast.ModelNode{}
	if err := yaml.Unmarshal(contents, &node); err != nil {
		return nil, fmt.Errorf("failed to parse model document: %w", err)
	}
	return &node, nil
}

// LoadFromFiles populates a registry with the namespaces found in the model
// document(s) specified, then validates the full set.
func LoadFromFiles(ctx context.Context, filePaths []string) (*model.ModelManager, error) {
	contents := map[string][]byte{}

	for _, filePath := range filePaths {
		fileContents, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}

		contents[filePath] = fileContents
	}

	return LoadFromContents(ctx, contents)
}

// LoadFromContents populates a registry with the namespaces found in the
// model document contents specified, then validates the full set. All
// files complete their structural phase before any validation runs, so
// imports may point across files regardless of order.
func LoadFromContents(ctx context.Context, filesContents map[string][]byte) (*model.ModelManager, error) {
	manager := model.NewModelManager()

	paths := make([]string, 0, len(filesContents))
	for path := range filesContents {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	for _, path := range paths {
		node, err := ParseModelDocument(filesContents[path])
		if err != nil {
			return nil, modelerrors.NewWithSourceError(err, path, 0, 0)
		}

		file, err := model.NewModelFile(manager, node)
		if err != nil {
			return nil, modelerrors.NewWithSourceError(err, path, 0, 0)
		}

		if err := manager.AddModelFile(file); err != nil {
			return nil, modelerrors.NewWithSourceError(err, path, 0, 0)
		}

		log.Ctx(ctx).Debug().
			Str("path", path).
			Str("namespace", file.Namespace()).
			Msg("loaded model document")
	}

	if err := manager.ValidateModels(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}
