package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo_AppendGetList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	first := &Patient{ID: uuid.New(), Name: "John McClane", Gender: GenderMale}
	second := &Patient{ID: uuid.New(), Name: "Martin Riggs", Gender: GenderMale}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	got, err := repo.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Martin Riggs", got.Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestMemoryRepo_DuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	p := &Patient{ID: uuid.New(), Name: "Dana Scully"}

	require.NoError(t, repo.Append(ctx, p))
	assert.Error(t, repo.Append(ctx, p))
}

func TestMemoryRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	_, err := repo.Get(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))

	id := uuid.New()
	err = repo.Replace(ctx, id, &Patient{ID: id})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryRepo_ReplaceRejectsIDMismatch(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	p := &Patient{ID: uuid.New()}
	require.NoError(t, repo.Append(ctx, p))

	err := repo.Replace(ctx, p.ID, &Patient{ID: uuid.New()})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestMemoryRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	p := &Patient{ID: uuid.New(), Name: "Hans Gruber"}
	require.NoError(t, repo.Append(ctx, p))

	p.Name = "mutated after append"
	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hans Gruber", got.Name)

	got.Entries = append(got.Entries, sampleEntry(t, EntryTypeHealthCheck))
	again, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Entries)
}

func TestMemoryRepo_ReplaceKeepsPosition(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	a := &Patient{ID: uuid.New(), Name: "a"}
	b := &Patient{ID: uuid.New(), Name: "b"}
	require.NoError(t, repo.Append(ctx, a))
	require.NoError(t, repo.Append(ctx, b))

	require.NoError(t, repo.Replace(ctx, a.ID, a.WithEntry(sampleEntry(t, EntryTypeHospital))))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Len(t, all[0].Entries, 1)
}
