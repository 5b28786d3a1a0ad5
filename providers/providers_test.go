package providers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/src-bin/plancheck/tfplan"
)

func TestAddressRoot(t *testing.T) {
	assert.Equal(t, "aws.default", NewAlias(nil, "aws", "").Address())
	assert.Equal(t, "aws.prod", NewAlias(ModulePath{}, "aws", "prod").Address())
}

func TestAddressNested(t *testing.T) {
	assert.Equal(
		t,
		"module.network.module.vpc.aws.prod",
		NewAlias(ModulePath{"network", "vpc"}, "aws", "prod").Address(),
	)
}

func TestLocate(t *testing.T) {
	snapshot := &tfplan.Snapshot{
		RootModule: tfplan.Module{
			Providers: []tfplan.ProviderConfig{
				{Type: "aws"}, // alias normalizes to "default"
				{Type: "aws", Alias: "us-west-2"},
				{Type: "google", Alias: "unrelated"}, // wrong type, never located
				{Type: "archive", Alias: "unrelated2"},
			},
			ChildModules: []*tfplan.Module{
				{
					Name: "network",
					ChildModules: []*tfplan.Module{
						{
							Name: "vpc",
							Providers: []tfplan.ProviderConfig{
								{Type: "aws", Alias: "prod"},
							},
						},
					},
				},
				{Name: "empty"}, // declares nothing, contributes nothing
			},
		},
	}

	located, err := Locate(snapshot, "aws")
	require.NoError(t, err)
	assert.Len(t, located, 3)
	assert.Contains(t, located, "aws.default")
	assert.Contains(t, located, "aws.us-west-2")
	assert.Contains(t, located, "module.network.module.vpc.aws.prod")
}

func TestLocateNothing(t *testing.T) {
	located, err := Locate(&tfplan.Snapshot{}, "aws")
	require.NoError(t, err)
	assert.Empty(t, located)
}

type failingSource struct{}

func (failingSource) ModulePaths() [][]string { return [][]string{{"gone"}} }

func (failingSource) ProviderConfigs([]string, string) ([]tfplan.ProviderConfig, error) {
	return nil, errors.New("store unavailable")
}

func TestLocatePropagatesStoreFailure(t *testing.T) {
	_, err := Locate(failingSource{}, "aws")
	assert.Error(t, err)
}
