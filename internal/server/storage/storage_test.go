package storage

import (
	"testing"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope(t *testing.T) {
	assert.Equal(t, "drive", Scope("maidsafe.net.test", true))
	assert.Equal(t, "apps/maidsafe.net.test", Scope("maidsafe.net.test", false))

	// one segment per app, whatever the id looks like
	assert.Equal(t, "apps/bank%2Fsecrets", Scope("bank/secrets", false))
	assert.NotEqual(t, Scope("bank/secrets", false), Scope("bank%2Fsecrets", false))
	assert.Equal(t, "apps/%2E%2E", Scope("..", false))
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in, want string
		bad      bool
	}{
		{in: "testDir", want: "testDir"},
		{in: "/testDir/", want: "testDir"},
		{in: "a//b", want: "a/b"},
		{in: "", bad: true},
		{in: "/", bad: true},
		{in: "a/../b", bad: true},
		{in: "./a", bad: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CleanPath(tt.in)
			if tt.bad {
				assert.ErrorIs(t, err, common.ErrMalformedPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParent(t *testing.T) {
	assert.Equal(t, "", parent("a"))
	assert.Equal(t, "a", parent("a/b"))
	assert.Equal(t, "a/b", parent("a/b/c"))
}
