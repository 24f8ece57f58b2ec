package repository

import (
	"context"
	"testing"

	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHungerSpotRepository_TransitionGuardsSourceStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewHungerSpotRepository(db)
	ctx := context.Background()

	reporter := testutil.CreateUser(t, db, "Vol", "vol@example.com", "secret1", models.RoleVolunteer)
	spot := &models.HungerSpot{
		Description:  "Families near the station",
		LocationText: "Platform 3",
		Status:       models.HungerSpotStatusPending,
		ReportedByID: &reporter.ID,
	}
	require.NoError(t, repo.Create(ctx, spot))

	ok, err := repo.Transition(ctx, spot.ID, models.HungerSpotStatusApproved, models.HungerSpotStatusResolved, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Transition(ctx, spot.ID, models.HungerSpotStatusPending, models.HungerSpotStatusApproved,
		map[string]interface{}{"assigned_volunteer_id": reporter.ID})
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repo.FindByID(ctx, spot.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HungerSpotStatusApproved, stored.Status)
	require.NotNil(t, stored.AssignedVolunteerID)
	assert.Equal(t, reporter.ID, *stored.AssignedVolunteerID)
	require.NotNil(t, stored.ReportedBy)
	assert.Equal(t, "Vol", stored.ReportedBy.Name)

	approved := models.HungerSpotStatusApproved
	count, err := repo.Count(ctx, &approved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
