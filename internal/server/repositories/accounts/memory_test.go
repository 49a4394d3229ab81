package accounts

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_, err := r.Create(ctx, &models.Account{ID: "a", Locator: "loc", Verifier: []byte("v")})
	require.NoError(t, err)

	got, err := r.GetByLocator(ctx, "loc")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = r.GetByLocator(ctx, "other")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ConcurrentDuplicate(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Create(ctx, &models.Account{ID: fmt.Sprint(i), Locator: "same"})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, common.ErrDuplicateAccount)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}
