package repository

import (
	"context"
	"testing"
	"time"

	"pledge/models"
	"pledge/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPenaltyRepository_LedgerRoundtrip(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	challengeRepo := NewChallengeRepository(testDB.DB)
	repo := NewPenaltyRepository(testDB.DB)
	ctx := context.Background()

	owner := testutil.CreateTestUser("Sara", "sara@example.com")
	require.NoError(t, userRepo.Create(ctx, owner))
	challenge := testutil.CreateTestChallenge(owner.ID)
	require.NoError(t, challengeRepo.Create(ctx, challenge))

	first := testutil.CreateTestPenalty(challenge.ID, owner.ID, 50000)
	require.NoError(t, repo.Create(ctx, first))
	second := testutil.CreateTestPenalty(challenge.ID, owner.ID, 50000)
	require.NoError(t, repo.Create(ctx, second))

	entries, err := repo.GetByChallenge(ctx, challenge.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Oldest first, nothing settled yet
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
	assert.False(t, entries[0].Settled())
	assert.False(t, entries[1].Settled())

	sum, err := repo.SumUnsettled(ctx, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), sum)
}

func TestPenaltyRepository_MarkSettled(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	challengeRepo := NewChallengeRepository(testDB.DB)
	settlementRepo := NewSettlementRepository(testDB.DB)
	repo := NewPenaltyRepository(testDB.DB)
	ctx := context.Background()

	owner := testutil.CreateTestUser("Sara", "sara@example.com")
	require.NoError(t, userRepo.Create(ctx, owner))
	challenge := testutil.CreateTestChallenge(owner.ID)
	require.NoError(t, challengeRepo.Create(ctx, challenge))

	for i := 0; i < 3; i++ {
		entry := testutil.CreateTestPenalty(challenge.ID, owner.ID, 50000)
		require.NoError(t, repo.Create(ctx, entry))
	}

	settlement := &models.Settlement{
		ID:          uuid.New().String(),
		ChallengeID: challenge.ID,
		Amount:      150000,
		ConfirmedBy: owner.ID,
	}
	require.NoError(t, settlementRepo.Create(ctx, settlement))

	cleared, err := repo.MarkSettled(ctx, challenge.ID, settlement.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), cleared)

	// Cleared entries drop out of the unsettled sum
	sum, err := repo.SumUnsettled(ctx, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)

	// But the history keeps them, stamped with the settlement id
	entries, err := repo.GetByChallenge(ctx, challenge.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, entry := range entries {
		assert.True(t, entry.Settled())
		require.NotNil(t, entry.SettlementID)
		assert.Equal(t, settlement.ID, *entry.SettlementID)
	}

	// A fresh entry after the settlement is owed again
	late := testutil.CreateTestPenalty(challenge.ID, owner.ID, 50000)
	require.NoError(t, repo.Create(ctx, late))

	sum, err = repo.SumUnsettled(ctx, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), sum)

	// Re-settling with the same id clears only the new entry
	cleared, err = repo.MarkSettled(ctx, challenge.ID, settlement.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), cleared)
}

func TestPenaltyRepository_GetByOwnerSince(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	challengeRepo := NewChallengeRepository(testDB.DB)
	repo := NewPenaltyRepository(testDB.DB)
	ctx := context.Background()

	owner := testutil.CreateTestUser("Sara", "sara@example.com")
	other := testutil.CreateTestUser("Reza", "reza@example.com")
	require.NoError(t, userRepo.Create(ctx, owner))
	require.NoError(t, userRepo.Create(ctx, other))

	ownerChallenge := testutil.CreateTestChallenge(owner.ID)
	require.NoError(t, challengeRepo.Create(ctx, ownerChallenge))
	otherChallenge := testutil.CreateTestChallenge(other.ID)
	require.NoError(t, challengeRepo.Create(ctx, otherChallenge))

	mine := testutil.CreateTestPenalty(ownerChallenge.ID, owner.ID, 50000)
	require.NoError(t, repo.Create(ctx, mine))
	theirs := testutil.CreateTestPenalty(otherChallenge.ID, other.ID, 25000)
	require.NoError(t, repo.Create(ctx, theirs))

	// Entries recorded against other owners' challenges don't show up
	entries, err := repo.GetByOwnerSince(ctx, owner.ID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, mine.ID, entries[0].ID)

	// A window starting in the future excludes everything
	entries, err = repo.GetByOwnerSince(ctx, owner.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
