package qnark

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert := require.New(t)

	assert.NoError(Version.Validate())
	assert.Empty(Version.Pre, "releases do not carry a pre-release tag")
	assert.True(Version.GTE(semver.MustParse("0.1.0")))
}
