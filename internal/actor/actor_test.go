package actor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cavworks/cav-cli/internal/actor"
	"github.com/cavworks/cav-cli/internal/actor/actortest"
)

type addEvent struct {
	actor.InputBase
	n int
}

type addedEffect struct {
	actor.EffectBase
	n int
}

func addReducer(state int, input actor.Input) (int, []actor.Effect) {
	ev, ok := input.(addEvent)
	if !ok {
		return state, nil
	}
	return state + ev.n, []actor.Effect{addedEffect{n: ev.n}}
}

func TestLoopProcessesInputsSequentially(t *testing.T) {
	t.Parallel()

	rt := &actortest.FakeRuntime{}
	l := actor.New[int](0, addReducer, rt)
	l.Start()
	defer l.Stop()

	for i := 1; i <= 5; i++ {
		require.NoError(t, l.Submit(addEvent{n: i}))
	}

	// The loop is async; poll for convergence.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && l.State() != 15 {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 15, l.State())
	require.Len(t, rt.Effects(), 5)
}

func TestSubmitAfterStopReturnsErrStopped(t *testing.T) {
	t.Parallel()

	l := actor.New[int](0, addReducer, &actortest.FakeRuntime{})
	l.Start()
	l.Stop()
	<-l.Done()

	require.ErrorIs(t, l.Submit(addEvent{n: 1}), actor.ErrStopped)
	require.False(t, l.TrySubmit(addEvent{n: 1}))
}

func TestTransitionHookObservesSteps(t *testing.T) {
	t.Parallel()

	steps := make(chan int, 1)
	l := actor.New[int](0, addReducer, &actortest.FakeRuntime{},
		actor.WithTransitionHook[int](func(prev, next int, _ actor.Input) {
			steps <- next
		}))
	l.Start()
	defer l.Stop()

	require.NoError(t, l.Submit(addEvent{n: 7}))
	select {
	case got := <-steps:
		require.Equal(t, 7, got)
	case <-time.After(2 * time.Second):
		t.Fatal("transition hook never fired")
	}
}
