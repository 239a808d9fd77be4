package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainImagePrefersDisplayOrderOne(t *testing.T) {
	images := []ProductImage{
		{ID: 10, DisplayOrder: 3},
		{ID: 11, DisplayOrder: 1},
		{ID: 12, DisplayOrder: 2},
	}

	main := MainImage(images)
	require.NotNil(t, main)
	assert.Equal(t, int64(11), main.ID)
}

func TestMainImageFallsBackToLowestOrder(t *testing.T) {
	images := []ProductImage{
		{ID: 20, DisplayOrder: 4},
		{ID: 21, DisplayOrder: 2},
	}

	main := MainImage(images)
	require.NotNil(t, main)
	assert.Equal(t, int64(21), main.ID)
}

func TestMainImageEmpty(t *testing.T) {
	assert.Nil(t, MainImage(nil))
	assert.Nil(t, MainImage([]ProductImage{}))
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAtLeast(RoleSuperAdmin, RoleEditor))
	assert.True(t, RoleAtLeast(RoleAdmin, RoleAdmin))
	assert.False(t, RoleAtLeast(RoleEditor, RoleAdmin))
	assert.False(t, RoleAtLeast("intern", RoleEditor))
}
