package storage

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the DirectoryStore contract against s.
func exerciseStore(t *testing.T, s DirectoryStore) {
	t.Helper()
	ctx := context.Background()
	scope := Scope("app", false)

	require.NoError(t, s.CreateDirectory(ctx, scope, &models.Directory{Path: "testDir", UserMetadata: "meta", IsVersioned: true}))
	assert.ErrorIs(t, s.CreateDirectory(ctx, scope, &models.Directory{Path: "testDir"}), common.ErrAlreadyExists)
	assert.ErrorIs(t, s.CreateDirectory(ctx, scope, &models.Directory{Path: "missing/child"}), common.ErrorNotFound)

	require.NoError(t, s.CreateDirectory(ctx, scope, &models.Directory{Path: "testDir/b"}))
	require.NoError(t, s.CreateDirectory(ctx, scope, &models.Directory{Path: "testDir/a"}))
	require.NoError(t, s.CreateDirectory(ctx, scope, &models.Directory{Path: "testDir/a/deep"}))

	d, err := s.GetDirectory(ctx, scope, "testDir")
	require.NoError(t, err)
	assert.Equal(t, "testDir", d.Path)
	assert.Equal(t, "meta", d.UserMetadata)
	assert.True(t, d.IsVersioned)
	assert.ElementsMatch(t, []string{"a", "b"}, d.SubDirectories)

	_, err = s.GetDirectory(ctx, Scope("other", false), "testDir")
	assert.ErrorIs(t, err, common.ErrorNotFound, "scopes are isolated")

	require.NoError(t, s.DeleteDirectory(ctx, scope, "testDir"))
	_, err = s.GetDirectory(ctx, scope, "testDir/a/deep")
	assert.ErrorIs(t, err, common.ErrorNotFound, "delete removes the subtree")
	assert.ErrorIs(t, s.DeleteDirectory(ctx, scope, "testDir"), common.ErrorNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}
