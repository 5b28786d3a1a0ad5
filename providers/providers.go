// Package providers walks a configuration snapshot's module tree and finds
// every alias of a given provider type, keyed by its canonical address.
package providers

import (
	"strings"

	"github.com/src-bin/plancheck/tfplan"
)

// DefaultAliasName is the alias Terraform gives a provider block that
// doesn't declare one.
const DefaultAliasName = "default"

// ModulePath locates a module in the tree. The empty path is the root
// module. Paths are traversal keys only and are never modified after
// construction.
type ModulePath []string

// ConfigSource is the read-only configuration/plan store. tfplan.Snapshot
// implements it; tests substitute their own. An error from the store aborts
// the whole evaluation.
type ConfigSource interface {
	ModulePaths() [][]string
	ProviderConfigs(path []string, providerType string) ([]tfplan.ProviderConfig, error)
}

// Alias identifies one provider alias instance. Construct these with
// NewAlias so that empty alias names normalize consistently.
type Alias struct {
	Path ModulePath
	Type string
	Name string
}

func NewAlias(path ModulePath, providerType, name string) Alias {
	if name == "" {
		name = DefaultAliasName
	}
	return Alias{path, providerType, name}
}

// Address renders the alias's canonical address: "type.alias" in the root
// module or "module.a.module.b.type.alias" at depth. It's deterministic and
// stable for a given (path, type, alias) and is the key everything
// downstream uses.
func (a Alias) Address() string {
	parts := make([]string, 0, 2*len(a.Path)+2)
	for _, segment := range a.Path {
		parts = append(parts, "module", segment)
	}
	parts = append(parts, a.Type, a.Name)
	return strings.Join(parts, ".")
}

// Locate visits every module in the source exactly once and returns every
// declared alias of the given provider type, keyed by canonical address.
// Modules that declare no providers of that type contribute nothing; only a
// failure of the source itself is an error.
func Locate(src ConfigSource, providerType string) (map[string]tfplan.ProviderConfig, error) {
	found := make(map[string]tfplan.ProviderConfig)
	for _, path := range src.ModulePaths() {
		configs, err := src.ProviderConfigs(path, providerType)
		if err != nil {
			return nil, err
		}
		for _, pc := range configs {
			found[NewAlias(path, providerType, pc.Alias).Address()] = pc
		}
	}
	return found, nil
}
