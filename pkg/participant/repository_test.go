package participant

import (
	"context"
	"testing"
	"time"

	"github.com/crewplan/crewplan/internal/test_utils"
	"github.com/crewplan/crewplan/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatus(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		_, err := db.Exec(
			`INSERT INTO users (id, uid, username, display_name) VALUES (?, ?, ?, ?)`,
			i, "uid-"+string(rune('0'+i)), "user"+string(rune('0'+i)), "User")
		require.NoError(t, err)
	}

	scheduleRepo := schedule.NewRepository(db)
	scheduleId, err := scheduleRepo.StoreSchedule(ctx, schedule.Schedule{
		Uid:         "with-invitee",
		OwnerId:     1,
		Date:        time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		StartMinute: 9 * 60,
		EndMinute:   10 * 60,
		Title:       "Morning shift",
	})
	require.NoError(t, err)
	_, err = scheduleRepo.StoreParticipant(ctx, scheduleId, 2, schedule.StatusPending)
	require.NoError(t, err)

	repo := NewRepository(db)

	t.Run("updates the row", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, scheduleId, 2, schedule.StatusApproved))

		got, err := scheduleRepo.GetByUid(ctx, "with-invitee")
		require.NoError(t, err)
		require.Len(t, got.Participants, 1)
		assert.Equal(t, schedule.StatusApproved, got.Participants[0].Status)
	})

	t.Run("missing row reports not participant", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, scheduleId, 99, schedule.StatusApproved)
		assert.ErrorIs(t, err, ErrNotParticipant)
	})
}
