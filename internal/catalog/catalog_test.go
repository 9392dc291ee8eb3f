package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashnextsavy/HydrationTracker/internal/store"
)

func TestDefaultTipsParse(t *testing.T) {
	tips, err := DefaultTips()
	require.NoError(t, err)
	require.Len(t, tips, 10)
	for _, tip := range tips {
		assert.NotEmpty(t, tip.Tip)
		assert.NotEmpty(t, tip.Category)
	}
}

func TestParseTipsNormalizes(t *testing.T) {
	tips, err := ParseTips([]byte("tips:\n  - tip: \" Drink \"\n    category: FOOD\n  - tip: Rest\n"))
	require.NoError(t, err)
	require.Len(t, tips, 2)
	assert.Equal(t, "Drink", tips[0].Tip)
	assert.Equal(t, "food", tips[0].Category)
	assert.Equal(t, "general", tips[1].Category)
}

func TestParseTipsRejects(t *testing.T) {
	_, err := ParseTips([]byte("tips: [\n"))
	assert.Error(t, err)

	_, err = ParseTips([]byte("tips:\n  - category: food\n"))
	assert.Error(t, err)
}

func TestEnsureTipsSeedsOnce(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	inserted, err := EnsureTips(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 10, inserted)

	inserted, err = EnsureTips(ctx, st)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	food, err := st.ListHydrationTips(ctx, "food")
	require.NoError(t, err)
	assert.Len(t, food, 2)
}
