package repositories

import (
	"context"
	"testing"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/testutil"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibilityRepository_Upsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresVisibilityRepository(db)
	ctx := context.Background()

	bob := testutil.CreateAccount(t, db, "bob")

	policy, err := repo.FindByAccountID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, policy)

	p := models.DefaultVisibilityPolicy(bob.ID)
	p.IsProfilePublic = false
	require.NoError(t, repo.Upsert(ctx, &p))

	p.FontSize = models.FontSizeLarge
	require.NoError(t, repo.Upsert(ctx, &p))

	policy, err = repo.FindByAccountID(ctx, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, policy)
	assert.False(t, policy.IsProfilePublic)
	assert.True(t, policy.AllowFriendRequests)
	assert.Equal(t, models.FontSizeLarge, policy.FontSize)

	private, err := repo.PrivateAccountIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, private)
}

func TestPlantRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresPlantRepository(db)
	ctx := context.Background()

	owner := testutil.CreateAccount(t, db, "emily")
	plant := &models.Plant{OwnerID: owner.ID, Name: "Aloe", Type: "Succulent", ChosenImageURL: "/static/aloe.png"}
	require.NoError(t, repo.Create(ctx, plant))

	require.NoError(t, repo.AddGrowth(ctx, &models.GrowthEntry{PlantID: plant.ID, OwnerID: owner.ID, CmGrown: 1.5}))
	require.NoError(t, repo.AddGrowth(ctx, &models.GrowthEntry{PlantID: plant.ID, OwnerID: owner.ID, CmGrown: 2}))

	growth, err := repo.ListGrowth(ctx, plant.ID)
	require.NoError(t, err)
	require.Len(t, growth, 2)
	assert.Equal(t, 1.5, growth[0].CmGrown)

	plants, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, plants, 1)

	require.NoError(t, repo.Delete(ctx, plant.ID))
	_, err = repo.FindByID(ctx, plant.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	growth, err = repo.ListGrowth(ctx, plant.ID)
	require.NoError(t, err)
	assert.Empty(t, growth)

	err = repo.Delete(ctx, plant.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestSQLPhotoRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLPhotoRepository(db)
	ctx := context.Background()

	a := testutil.CreateAccount(t, db, "alice")
	b := testutil.CreateAccount(t, db, "bob")

	var created []models.Photo
	for i, owner := range []uint{a.ID, b.ID, a.ID} {
		p := &models.Photo{OwnerID: owner, PlantID: uint(i + 1), ImageURL: "https://img.plantly.com/p.png"}
		require.NoError(t, repo.Create(ctx, p))
		require.NotEmpty(t, p.ID)
		created = append(created, *p)
	}

	recent, err := repo.Recent(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, created[2].ID, recent[0].ID)
	assert.Equal(t, created[1].ID, recent[1].ID)

	recent, err = repo.Recent(ctx, []uint{b.ID}, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	for _, p := range recent {
		assert.Equal(t, a.ID, p.OwnerID)
	}

	byOwners, err := repo.RecentByOwners(ctx, []uint{b.ID}, 10)
	require.NoError(t, err)
	require.Len(t, byOwners, 1)
	assert.Equal(t, created[1].ID, byOwners[0].ID)

	none, err := repo.RecentByOwners(ctx, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, none)

	mine, err := repo.ListByOwner(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestShareRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresShareRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.SharedContentRecord{ContentID: 1, SharedBy: 1, SharedWith: 2}))
	require.NoError(t, repo.Create(ctx, &models.SharedContentRecord{ContentID: 1, SharedBy: 1, SharedWith: 2}))

	records, err := repo.ListSharedWith(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2, "repeated shares are kept")
}
