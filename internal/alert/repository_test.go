package alert_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breathesafe/breathesafe/internal/alert"
)

func TestInMemoryRepository_CreateAndMarkSent(t *testing.T) {
	repo := alert.NewInMemoryRepository()
	ctx := context.Background()

	forecastAt := time.Date(2026, time.June, 3, 14, 0, 0, 0, time.UTC)
	a := &alert.Alert{
		ID:         alert.NewID(),
		UserID:     "usr_1",
		Location:   "Delhi",
		AQI:        180,
		Pollutants: alert.PollutantSnapshot{PM25: 90, PM10: 120},
		ForecastAt: forecastAt,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, a))

	sentAt := time.Now()
	require.NoError(t, repo.MarkSent(ctx, "usr_1", forecastAt, sentAt))

	list, err := repo.ListByUser(ctx, "usr_1", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].SMSSent)
	require.NotNil(t, list[0].SMSSentAt)
	assert.WithinDuration(t, sentAt, *list[0].SMSSentAt, time.Second)
}

func TestInMemoryRepository_MarkSentUnknown(t *testing.T) {
	repo := alert.NewInMemoryRepository()
	err := repo.MarkSent(context.Background(), "usr_1", time.Now(), time.Now())
	assert.ErrorIs(t, err, alert.ErrAlertNotFound)
}

func TestInMemoryRepository_ListOrderAndLimit(t *testing.T) {
	repo := alert.NewInMemoryRepository()
	ctx := context.Background()

	base := time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &alert.Alert{
			ID:         alert.NewID(),
			UserID:     "usr_1",
			ForecastAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.Create(ctx, &alert.Alert{
		ID:         alert.NewID(),
		UserID:     "usr_other",
		ForecastAt: base,
	}))

	list, err := repo.ListByUser(ctx, "usr_1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, base.Add(2*time.Hour), list[0].ForecastAt)
	assert.Equal(t, base.Add(time.Hour), list[1].ForecastAt)
}
