package services

import (
	"context"
	"testing"

	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/repository"
	"github.com/foodbridge/donation-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var allSpotStatuses = []models.HungerSpotStatus{
	models.HungerSpotStatusPending,
	models.HungerSpotStatusApproved,
	models.HungerSpotStatusRejected,
	models.HungerSpotStatusResolved,
}

func newHungerSpotService(t *testing.T) (*HungerSpotService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewHungerSpotService(repository.NewHungerSpotRepository(db), repository.NewUserRepository(db)), db
}

func TestCanTransition(t *testing.T) {
	legal := map[[2]models.HungerSpotStatus]bool{
		{models.HungerSpotStatusPending, models.HungerSpotStatusApproved}:  true,
		{models.HungerSpotStatusPending, models.HungerSpotStatusRejected}:  true,
		{models.HungerSpotStatusApproved, models.HungerSpotStatusResolved}: true,
	}

	for _, from := range allSpotStatuses {
		for _, to := range allSpotStatuses {
			assert.Equal(t, legal[[2]models.HungerSpotStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestHungerSpotService_Report(t *testing.T) {
	svc, db := newHungerSpotService(t)
	ctx := context.Background()
	reporter := testutil.CreateUser(t, db, "Reporter", "reporter@example.com", "secret1", models.RoleVolunteer)

	spot, err := svc.Report(ctx, ReportHungerSpotInput{
		ReporterID:   &reporter.ID,
		Description:  "Families under the bridge",
		LocationText: "Ring Road flyover",
		Latitude:     float64Ptr(12.97),
		Longitude:    float64Ptr(77.59),
	})
	require.NoError(t, err)
	assert.Equal(t, models.HungerSpotStatusPending, spot.Status)
	require.NotNil(t, spot.Latitude)
	assert.InDelta(t, 12.97, *spot.Latitude, 1e-9)
	require.NotNil(t, spot.ReportedBy)
	assert.Equal(t, "Reporter", spot.ReportedBy.Name)
}

func TestHungerSpotService_ReportCoordinates(t *testing.T) {
	svc, _ := newHungerSpotService(t)
	ctx := context.Background()

	base := ReportHungerSpotInput{Description: "Night shelter", LocationText: "Station Road"}

	onlyLat := base
	onlyLat.Latitude = float64Ptr(10)
	spot, err := svc.Report(ctx, onlyLat)
	require.NoError(t, err)
	assert.Nil(t, spot.Latitude)
	assert.Nil(t, spot.Longitude)
	assert.Nil(t, spot.ReportedByID)

	origin := base
	origin.Latitude, origin.Longitude = float64Ptr(0), float64Ptr(0)
	spot, err = svc.Report(ctx, origin)
	require.NoError(t, err)
	assert.Nil(t, spot.Latitude)

	outOfRange := base
	outOfRange.Latitude, outOfRange.Longitude = float64Ptr(91), float64Ptr(10)
	_, err = svc.Report(ctx, outOfRange)
	assert.ErrorIs(t, err, ErrValidation)

	outOfRange.Latitude, outOfRange.Longitude = float64Ptr(10), float64Ptr(-181)
	_, err = svc.Report(ctx, outOfRange)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Report(ctx, ReportHungerSpotInput{LocationText: "Station Road"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Report(ctx, ReportHungerSpotInput{Description: "Night shelter"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHungerSpotService_Transitions(t *testing.T) {
	svc, _ := newHungerSpotService(t)
	ctx := context.Background()

	report := func() *models.HungerSpot {
		spot, err := svc.Report(ctx, ReportHungerSpotInput{Description: "Camp", LocationText: "Riverside"})
		require.NoError(t, err)
		return spot
	}

	approved := report()
	spot, err := svc.Approve(ctx, approved.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.HungerSpotStatusApproved, spot.Status)

	_, err = svc.Approve(ctx, approved.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = svc.Reject(ctx, approved.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	spot, err = svc.Resolve(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HungerSpotStatusResolved, spot.Status)

	for _, move := range []func(context.Context, uint64) (*models.HungerSpot, error){svc.Reject, svc.Resolve} {
		_, err = move(ctx, approved.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	}

	rejected := report()
	spot, err = svc.Reject(ctx, rejected.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HungerSpotStatusRejected, spot.Status)
	_, err = svc.Approve(ctx, rejected.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidState)

	pending := report()
	_, err = svc.Resolve(ctx, pending.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.Reject(ctx, 9999)
	assert.ErrorIs(t, err, ErrHungerSpotNotFound)
}

func TestHungerSpotService_ApproveAssignsVolunteer(t *testing.T) {
	svc, db := newHungerSpotService(t)
	ctx := context.Background()
	volunteer := testutil.CreateUser(t, db, "Volunteer", "volunteer@example.com", "secret1", models.RoleVolunteer)
	donor := testutil.CreateUser(t, db, "Donor", "donor@example.com", "secret1", models.RoleDonor)

	spot, err := svc.Report(ctx, ReportHungerSpotInput{Description: "Camp", LocationText: "Riverside"})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, spot.ID, &donor.ID)
	assert.ErrorIs(t, err, ErrVolunteerNotFound)

	_, err = svc.Approve(ctx, spot.ID, uint64Ptr(9999))
	assert.ErrorIs(t, err, ErrVolunteerNotFound)

	approved, err := svc.Approve(ctx, spot.ID, &volunteer.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.AssignedVolunteerID)
	assert.Equal(t, volunteer.ID, *approved.AssignedVolunteerID)
}

func TestHungerSpotService_ListByStatus(t *testing.T) {
	svc, _ := newHungerSpotService(t)
	ctx := context.Background()

	first, err := svc.Report(ctx, ReportHungerSpotInput{Description: "Camp", LocationText: "Riverside"})
	require.NoError(t, err)
	_, err = svc.Report(ctx, ReportHungerSpotInput{Description: "Shelter", LocationText: "Station"})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, first.ID, nil)
	require.NoError(t, err)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	status := models.HungerSpotStatusApproved
	approved, err := svc.List(ctx, &status)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, first.ID, approved[0].ID)

	bogus := models.HungerSpotStatus("closed")
	_, err = svc.List(ctx, &bogus)
	assert.ErrorIs(t, err, ErrValidation)
}
