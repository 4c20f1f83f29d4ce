package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/repositories"
	"github.com/emilyand-i/AgileWebGroup82/internal/security"
	"github.com/emilyand-i/AgileWebGroup82/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAccounts_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresAccountRepository(db)
	ctx := context.Background()

	created, err := SeedAccounts(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 10, created)

	created, err = SeedAccounts(ctx, repo)
	require.NoError(t, err)
	assert.Zero(t, created)

	judy, err := repo.FindByUsername(ctx, "judy")
	require.NoError(t, err)
	assert.Equal(t, "judy@plantly.com", judy.Email)
	assert.True(t, security.CheckPassword(judy.PasswordHash, "password10"))
}

func TestInspect(t *testing.T) {
	db := testutil.NewTestDB(t)
	james := testutil.CreateAccount(t, db, "james")
	emily := testutil.CreateAccount(t, db, "emily")
	require.NoError(t, db.Create(&models.RelationshipEdge{
		RequesterID: james.ID,
		TargetID:    emily.ID,
		Status:      models.RelationshipPending,
	}).Error)

	var out bytes.Buffer
	require.NoError(t, Inspect(&out, db))

	text := out.String()
	assert.Contains(t, text, "james@plantly.com")
	assert.Contains(t, text, "pending")
	assert.Contains(t, text, "SHARES")
}
