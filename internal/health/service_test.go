package health_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breathesafe/breathesafe/internal/health"
)

func TestService_SubmitAndLatest(t *testing.T) {
	svc := health.NewService(health.NewInMemoryRepository())
	ctx := context.Background()

	first, err := svc.Submit(ctx, "usr_1", health.SubmitInput{
		Age:      45,
		Symptoms: []string{"Cough"},
		Conditions: []health.Condition{
			{Name: "Asthma", Severity: health.SeveritySevere},
			{Name: "Hypertension"}, // ungraded
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "has_", first.ID[:4])
	assert.Equal(t, health.SeveritySevere, first.Conditions[0].Severity)
	assert.Equal(t, health.SeverityModerate, first.Conditions[1].Severity)

	latest, err := svc.Latest(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
}

func TestService_LatestPicksMostRecent(t *testing.T) {
	repo := health.NewInMemoryRepository()
	ctx := context.Background()

	old := &health.Assessment{
		ID: health.NewID(), UserID: "usr_1", Age: 40,
		AssessedAt: time.Now().Add(-48 * time.Hour),
	}
	recent := &health.Assessment{
		ID: health.NewID(), UserID: "usr_1", Age: 41,
		Symptoms:   []string{"Wheezing"},
		AssessedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, recent))

	latest, err := repo.LatestByUser(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, recent.ID, latest.ID)

	list, err := repo.ListByUser(ctx, "usr_1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, recent.ID, list[0].ID)
}

func TestService_ProfileFor(t *testing.T) {
	svc := health.NewService(health.NewInMemoryRepository())
	ctx := context.Background()

	// No assessment on file: default profile, no error.
	profile, err := svc.ProfileFor(ctx, "usr_unknown")
	require.NoError(t, err)
	assert.Equal(t, health.DefaultAge, profile.Age)
	assert.Empty(t, profile.Symptoms)
	assert.Empty(t, profile.Conditions)

	_, err = svc.Submit(ctx, "usr_1", health.SubmitInput{
		Age:        62,
		Symptoms:   []string{"Shortness of breath"},
		Conditions: []health.Condition{{Name: "COPD"}},
	})
	require.NoError(t, err)

	profile, err = svc.ProfileFor(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, 62, profile.Age)
	assert.Equal(t, []string{"Shortness of breath"}, profile.Symptoms)
	assert.Equal(t, []string{"COPD"}, profile.Conditions)
}

func TestAssessment_ProfileDefaultsAge(t *testing.T) {
	a := &health.Assessment{Age: 0, Symptoms: []string{"Cough"}}
	profile := a.Profile()
	assert.Equal(t, health.DefaultAge, profile.Age)
	assert.Equal(t, []string{"Cough"}, profile.Symptoms)
}

func TestSeverity_Valid(t *testing.T) {
	assert.True(t, health.SeverityMild.Valid())
	assert.True(t, health.SeverityModerate.Valid())
	assert.True(t, health.SeveritySevere.Valid())
	assert.False(t, health.Severity("critical").Valid())
	assert.False(t, health.Severity("").Valid())
}
