package testutil

import (
	"pledge/models"

	"github.com/google/uuid"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(name, email string) *models.User {
	return &models.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}
}

// CreateTestChallenge creates a test challenge with sensible defaults. The
// charity id references seed data loaded by the migrations.
func CreateTestChallenge(ownerID string) *models.Challenge {
	return &models.Challenge{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Title:         "no sugar",
		Description:   "thirty days without sugar",
		Duration:      30,
		PenaltyAmount: 50000,
		CharityID:     "charity1",
	}
}

// CreateTestPenalty creates a test ledger entry for a challenge
func CreateTestPenalty(challengeID, recordedBy string, amount int64) *models.PenaltyEntry {
	return &models.PenaltyEntry{
		ID:          uuid.New().String(),
		ChallengeID: challengeID,
		Amount:      amount,
		RecordedBy:  recordedBy,
	}
}
