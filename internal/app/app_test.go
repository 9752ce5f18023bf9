package app

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"testing"
	"time"
)

func TestCreateApp(t *testing.T) {
	tests := map[string]struct {
		cfg   *Config
		error string
	}{
		"empty config": {
			cfg:   &Config{},
			error: "service name is required\nstop timeout is required",
		},
		"valid config": {
			cfg: &Config{ServiceName: "test", StopTimeout: time.Second},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := CreateApp(tc.cfg)
			if tc.error != "" {
				require.EqualError(t, err, tc.error)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
		})
	}
}

func TestApp_Run(t *testing.T) {
	t.Run("starts in order and stops in reverse on cancel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		first := NewMockDependency(ctrl)
		second := NewMockDependency(ctrl)
		first.EXPECT().Name().Return("first").AnyTimes()
		second.EXPECT().Name().Return("second").AnyTimes()

		gomock.InOrder(
			first.EXPECT().Start().Return(nil),
			second.EXPECT().Start().Return(nil),
			second.EXPECT().Stop().Return(nil),
			first.EXPECT().Stop().Return(nil),
		)

		a, err := CreateApp(&Config{ServiceName: "test", StopTimeout: time.Second}, first, second)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.NoError(t, a.Run(ctx))

		require.EqualError(t, a.Run(ctx), "run has already been called")
	})

	t.Run("start failure stops started dependencies only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		first := NewMockDependency(ctrl)
		broken := NewMockDependency(ctrl)
		never := NewMockDependency(ctrl)
		first.EXPECT().Name().Return("first").AnyTimes()
		broken.EXPECT().Name().Return("broken").AnyTimes()
		never.EXPECT().Name().Return("never").AnyTimes()

		first.EXPECT().Start().Return(nil)
		broken.EXPECT().Start().Return(assert.AnError)
		first.EXPECT().Stop().Return(nil)

		a, err := CreateApp(&Config{ServiceName: "test", StopTimeout: time.Second}, first, broken, never)
		require.NoError(t, err)

		err = a.Run(context.Background())
		require.ErrorIs(t, err, assert.AnError)
		require.Contains(t, err.Error(), "failure in Start() for dependency broken")
	})

	t.Run("panic in start is reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		dep := NewMockDependency(ctrl)
		dep.EXPECT().Name().Return("panicky").AnyTimes()
		dep.EXPECT().Start().DoAndReturn(func() error {
			panic("boom")
		})

		a, err := CreateApp(&Config{ServiceName: "test", StopTimeout: time.Second}, dep)
		require.NoError(t, err)

		err = a.Run(context.Background())
		require.EqualError(t, err, "panic in Start() for dependency panicky: boom")
	})

	t.Run("stop errors are joined", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		dep := NewMockDependency(ctrl)
		dep.EXPECT().Name().Return("dep").AnyTimes()
		dep.EXPECT().Start().Return(nil)
		dep.EXPECT().Stop().Return(assert.AnError)

		a, err := CreateApp(&Config{ServiceName: "test", StopTimeout: time.Second}, dep)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err = a.Run(ctx)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("stop timeout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		release := make(chan struct{})
		defer close(release)

		dep := NewMockDependency(ctrl)
		dep.EXPECT().Name().Return("slow").AnyTimes()
		dep.EXPECT().Start().Return(nil)
		dep.EXPECT().Stop().DoAndReturn(func() error {
			<-release
			return nil
		})

		a, err := CreateApp(&Config{ServiceName: "test", StopTimeout: 20 * time.Millisecond}, dep)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err = a.Run(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
