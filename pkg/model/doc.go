// Package model builds and validates the semantic object model for a
// class-based modeling language: typed class declarations grouped into
// namespaces, single inheritance resolved across namespaces via imports,
// and structural constraints enforced over the fully assembled type graph.
//
// Construction is two-phase. Each ModelFile builds its declarations
// structurally, with no cross-file references resolved, so files may be
// loaded in any order and import each other freely. Once every file is
// registered, ModelManager.ValidateModels resolves super-types and
// identifiers against the complete graph and enforces uniqueness.
package model
