package myscheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/userarea/lib/mylease"
)

func TestScheduler(t *testing.T) {
	c := context.TODO()

	t.Run("runs job under lease", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		lease := mylease.NewMockLease(ctrl)
		sut := New(lease, time.Minute, 4*time.Minute)

		// given
		lease.EXPECT().TryAcquire(gomock.Any(), "lockSweep", 4*time.Minute).Return(true, nil)
		lease.EXPECT().Release(gomock.Any(), "lockSweep", time.Minute).Return(nil)
		ran := false

		// when
		executed, err := sut.RunLocked(c, "lockSweep", func(c context.Context) error {
			ran = true
			return nil
		})

		// then
		assert.NoError(t, err)
		assert.True(t, executed)
		assert.True(t, ran)
	})

	t.Run("skips job when lease is taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		lease := mylease.NewMockLease(ctrl)
		sut := New(lease, time.Minute, 4*time.Minute)

		// given
		lease.EXPECT().TryAcquire(gomock.Any(), "lockSweep", 4*time.Minute).Return(false, nil)

		// when
		executed, err := sut.RunLocked(c, "lockSweep", func(c context.Context) error {
			t.Fatal("must not run")
			return nil
		})

		// then
		assert.NoError(t, err)
		assert.False(t, executed)
	})

	t.Run("releases lease when job fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		lease := mylease.NewMockLease(ctrl)
		sut := New(lease, time.Minute, 4*time.Minute)

		// given
		lease.EXPECT().TryAcquire(gomock.Any(), "lockSweep", 4*time.Minute).Return(true, nil)
		lease.EXPECT().Release(gomock.Any(), "lockSweep", time.Minute).Return(nil)

		// when
		executed, err := sut.RunLocked(c, "lockSweep", func(c context.Context) error {
			return fmt.Errorf("sweep failed")
		})

		// then
		assert.Error(t, err)
		assert.True(t, executed)
	})

	t.Run("invalid cron spec", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sut := New(mylease.NewMockLease(ctrl), time.Minute, 4*time.Minute)

		err := sut.Register(c, "lockSweep", "not a cron spec", func(c context.Context) error { return nil })

		assert.Error(t, err)
	})
}
