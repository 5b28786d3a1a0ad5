// Package tfplan models the materialized configuration/plan snapshot that
// plancheck audits. The snapshot is a single JSON document shaped like the
// module tree in `terraform show -json` output, reduced to the parts this
// tool cares about: per-module provider configurations (their literal
// assume_role configuration and their assume_role references) and the flat
// table of resolved input-variable values at plan time.
//
// A snapshot is immutable once loaded. Nothing here mutates it and nothing
// here talks to Terraform or to AWS.
package tfplan

import (
	"fmt"

	"github.com/src-bin/plancheck/jsonutil"
)

type Snapshot struct {
	FormatVersion    string            `json:"format_version,omitempty"`
	TerraformVersion string            `json:"terraform_version,omitempty"`
	RootModule       Module            `json:"root_module"`
	Variables        map[string]string `json:"variables,omitempty"`
}

// Module is one node in the module tree. The root module has an empty Name;
// every other module's Name is the label on the module call that created it.
type Module struct {
	Name         string           `json:"name,omitempty"`
	Providers    []ProviderConfig `json:"provider_configs,omitempty"`
	ChildModules []*Module        `json:"child_modules,omitempty"`
}

// ProviderConfig is one provider alias as declared in one module. An empty
// Alias means the provider block had no alias argument at all, which
// Terraform and this tool both treat as the default alias.
type ProviderConfig struct {
	Type       string      `json:"type"`
	Alias      string      `json:"alias,omitempty"`
	Config     BlockConfig `json:"config"`
	References BlockRefs   `json:"references"`
}

// BlockConfig carries the literal configuration side of a provider block.
// AssumeRole has zero or one entries; Terraform doesn't allow more but the
// snapshot format doesn't promise that, so it's a slice.
type BlockConfig struct {
	AssumeRole []AssumeRoleConfig `json:"assume_role,omitempty"`
}

// AssumeRoleConfig's RoleArn is nil when the assume_role block exists but
// its role_arn argument isn't a constant value.
type AssumeRoleConfig struct {
	RoleArn *string `json:"role_arn"`
}

// BlockRefs carries the reference side of a provider block: for each
// argument, the source expressions it refers to, rendered as strings like
// "var.role_arn". The first element of each sequence is the significant one.
type BlockRefs struct {
	AssumeRole []AssumeRoleRefs `json:"assume_role,omitempty"`
}

type AssumeRoleRefs struct {
	RoleArn []string `json:"role_arn,omitempty"`
}

func Load(pathname string) (*Snapshot, error) {
	snapshot := &Snapshot{}
	if err := jsonutil.Read(pathname, snapshot); err != nil {
		return nil, fmt.Errorf("reading plan snapshot %s: %w", pathname, err)
	}
	return snapshot, nil
}

// ModulePaths enumerates every module in the tree, depth-first, parents
// before children. The root module is the empty path. The order is
// deterministic for a given snapshot.
func (s *Snapshot) ModulePaths() [][]string {
	var paths [][]string
	var walk func(m *Module, path []string)
	walk = func(m *Module, path []string) {
		paths = append(paths, path)
		for _, child := range m.ChildModules {
			childPath := append(append([]string{}, path...), child.Name)
			walk(child, childPath)
		}
	}
	walk(&s.RootModule, []string{})
	return paths
}

// ProviderConfigs returns the provider aliases of the given type declared by
// the module at path. A module that declares none is an empty, non-error
// result; only a path that names no module at all is an error.
func (s *Snapshot) ProviderConfigs(path []string, providerType string) ([]ProviderConfig, error) {
	m, err := s.module(path)
	if err != nil {
		return nil, err
	}
	var configs []ProviderConfig
	for _, pc := range m.Providers {
		if pc.Type == providerType {
			configs = append(configs, pc)
		}
	}
	return configs, nil
}

// Variable returns the resolved plan-time value of the named input variable.
func (s *Snapshot) Variable(name string) (string, bool) {
	value, ok := s.Variables[name]
	return value, ok
}

func (s *Snapshot) module(path []string) (*Module, error) {
	m := &s.RootModule
segments:
	for i, segment := range path {
		for _, child := range m.ChildModules {
			if child.Name == segment {
				m = child
				continue segments
			}
		}
		return nil, fmt.Errorf("no module at path %v", path[:i+1])
	}
	return m, nil
}
