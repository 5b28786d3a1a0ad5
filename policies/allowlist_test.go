package policies

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllowListYAML(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(pathname, []byte(`allowed_role_arns:
  - arn:aws:iam::111111111111:role/Deploy
  - arn:aws:iam::222222222222:role/Audit
`), 0666))
	list, err := LoadAllowList(pathname)
	require.NoError(t, err)
	assert.Equal(t, AllowList{
		"arn:aws:iam::111111111111:role/Deploy",
		"arn:aws:iam::222222222222:role/Audit",
	}, list)
	assert.True(t, list.Contains("arn:aws:iam::111111111111:role/Deploy"))
	assert.False(t, list.Contains("arn:aws:iam::333333333333:role/Rogue"))
}

func TestLoadAllowListJSON(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), "policy.json")
	require.NoError(t, os.WriteFile(pathname, []byte(`{"allowed_role_arns": ["arn:aws:iam::111111111111:role/Deploy"]}`), 0666))
	list, err := LoadAllowList(pathname)
	require.NoError(t, err)
	assert.Equal(t, AllowList{"arn:aws:iam::111111111111:role/Deploy"}, list)
}

func TestLoadAllowListMissingFile(t *testing.T) {
	_, err := LoadAllowList(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestAllowListContainsEmptyString(t *testing.T) {
	assert.False(t, AllowList{"arn:good"}.Contains(""))
}
