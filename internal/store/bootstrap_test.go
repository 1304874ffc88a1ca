package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoMarker(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	loaded, err := s.DemoLoaded()
	require.NoError(t, err)
	assert.False(t, loaded)

	require.NoError(t, s.MarkDemoLoaded())

	loaded, err = s.DemoLoaded()
	require.NoError(t, err)
	assert.True(t, loaded)

	require.NoError(t, s.ClearDemoMarker())

	loaded, err = s.DemoLoaded()
	require.NoError(t, err)
	assert.False(t, loaded)
}
