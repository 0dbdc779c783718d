package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pauta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBriefingRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBriefingRepo(db)
	ctx := context.Background()

	b := testutil.NewTestBriefing("Padaria artesanal no bairro", testutil.WithRegion("SP"), testutil.WithModel("llama3.2"))
	require.NoError(t, repo.Create(ctx, b))

	fetched, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, fetched.ID)
	assert.Equal(t, "Padaria artesanal no bairro", fetched.Description)
	assert.Equal(t, "SP", fetched.RegionCode)
	assert.Equal(t, "llama3.2", fetched.Model)
	assert.True(t, b.CreatedAt.Equal(fetched.CreatedAt), "created_at should round-trip with sub-second precision")
}

func TestBriefingRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBriefingRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBriefingRepo_List_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBriefingRepo(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	older := testutil.NewTestBriefing("Academia de bairro", testutil.WithCreatedAt(base))
	newer := testutil.NewTestBriefing("Pet shop com banho e tosa", testutil.WithCreatedAt(base.Add(time.Millisecond)))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestBriefingRepo_Resolve(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBriefingRepo(db)
	ctx := context.Background()

	a := testutil.NewTestBriefing("Clínica veterinária")
	a.ID = "abc12345-0000-0000-0000-000000000001"
	b := testutil.NewTestBriefing("Escola de idiomas")
	b.ID = "abc99999-0000-0000-0000-000000000002"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	t.Run("full id", func(t *testing.T) {
		got, err := repo.Resolve(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
	})

	t.Run("unique prefix", func(t *testing.T) {
		got, err := repo.Resolve(ctx, "abc9")
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := repo.Resolve(ctx, "abc")
		assert.ErrorIs(t, err, ErrAmbiguousID)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := repo.Resolve(ctx, "zzz")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBriefingRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBriefingRepo(db)
	ctx := context.Background()

	b := testutil.NewTestBriefing("Floricultura")
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Delete(ctx, b.ID))

	_, err := repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
