package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/userarea/lib/mylease"
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/lib/mymetrics"
	"github.com/MarcGrol/userarea/lib/myscheduler"
	"github.com/MarcGrol/userarea/lib/mytime"
	"github.com/MarcGrol/userarea/services/locksweeper"
)

func TestSweepStaleApplicationLocks(t *testing.T) {
	c := context.TODO()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	lockedAt := mytime.ExampleTime
	sweepAt := lockedAt.Add(31 * time.Minute)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(sweepAt).AnyTimes()
	store := NewInMemoryStore()
	service := NewService(store, nower, mylog.New("application"))
	sweeper := locksweeper.New([]string{TableName}, 30*time.Minute, nower, mymetrics.New(), mylog.New("locksweeper"), service)
	scheduler := myscheduler.New(mylease.NewInMemoryLease(nower), time.Minute, 4*time.Minute)

	// given
	require.NoError(t, store.Save(c, Application{ID: 1, Number: "123"}, "system"))
	require.NoError(t, store.Save(c, Application{ID: 2, Number: "456"}, "system"))
	_, err := store.Lock(c, 1, "alice", lockedAt)
	require.NoError(t, err)
	_, err = store.Lock(c, 2, "bob", lockedAt.Add(5*time.Minute))
	require.NoError(t, err)

	// when
	ran, err := scheduler.RunLocked(c, locksweeper.JobName, sweeper.Run)

	// then
	require.NoError(t, err)
	assert.True(t, ran)
	first, _, _ := store.Get(c, 1)
	assert.False(t, first.IsLocked())
	second, _, _ := store.Get(c, 2)
	assert.True(t, second.IsLockedBy("bob"))
}
