package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerNamesLogger(t *testing.T) {
	require.NoError(t, InitLogger("development"))
	assert.Equal(t, "storefront", GetLogger().Name())
	SyncLogger()
}

func TestInitLoggerProduction(t *testing.T) {
	require.NoError(t, InitLogger("production"))
	assert.Equal(t, "storefront", GetLogger().Name())
	SyncLogger()
}
