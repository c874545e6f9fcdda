package tagprefix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	tbl := New()

	got, err := tbl.Resolve("!", "local")
	require.NoError(t, err)
	assert.Equal(t, "!local", got)

	got, err = tbl.Resolve("!!", "str")
	require.NoError(t, err)
	assert.Equal(t, "tag:yaml.org,2002:str", got)
}

func TestUnknownHandleIsAnError(t *testing.T) {
	tbl := New()
	_, err := tbl.Resolve("!e!", "point")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "!e!")
}

func TestAddAndResolve(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Add("!e!", "tag:example.com,2024:"))

	got, err := tbl.Resolve("!e!", "point")
	require.NoError(t, err)
	assert.Equal(t, "tag:example.com,2024:point", got)
}

func TestDuplicateHandleIsFatal(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Add("!e!", "tag:example.com,2024:"))
	require.Error(t, tbl.Add("!e!", "tag:other.example,2024:"))
}

func TestDirectiveMayOverrideDefaultHandleOnce(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Add("!!", "tag:example.com,2024:"))

	got, err := tbl.Resolve("!!", "point")
	require.NoError(t, err)
	assert.Equal(t, "tag:example.com,2024:point", got)

	require.Error(t, tbl.Add("!!", "tag:again.example,2024:"))
}

func TestResetRestoresDefaults(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Add("!e!", "tag:example.com,2024:"))
	tbl.Reset()

	_, err := tbl.Resolve("!e!", "point")
	require.Error(t, err, "document-scoped handles do not survive Reset")

	got, err := tbl.Resolve("!!", "str")
	require.NoError(t, err)
	assert.Equal(t, "tag:yaml.org,2002:str", got)

	// A handle that collided before Reset is definable again.
	require.NoError(t, tbl.Add("!e!", "tag:example.com,2024:"))
}

func TestValidHandle(t *testing.T) {
	assert.True(t, ValidHandle("!"))
	assert.True(t, ValidHandle("!!"))
	assert.True(t, ValidHandle("!e!"))
	assert.True(t, ValidHandle("!my-app_1!"))
	assert.False(t, ValidHandle("e!"))
	assert.False(t, ValidHandle("!e"))
	assert.False(t, ValidHandle("!bad char!"))
}
