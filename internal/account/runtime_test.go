package account

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/cavworks/cav-cli/internal/actor"
	"github.com/cavworks/cav-cli/internal/actor/actortest"
)

func timerRuntime(clock actor.Clock) *Runtime {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &Runtime{log: log, clock: clock}
}

func TestTimerFireStampsClockTime(t *testing.T) {
	t.Parallel()

	clock := actortest.NewFakeClock(time.Unix(1700000000, 0))
	rt := timerRuntime(clock)
	defer rt.Stop()

	inputs := make(chan actor.Input, 1)
	rt.HandleEffects(context.Background(),
		[]actor.Effect{effStartTimer{Name: followUpTimer, AfterMs: 1}},
		func(in actor.Input) { inputs <- in })

	select {
	case in := <-inputs:
		fired, ok := in.(evTimerFired)
		require.True(t, ok)
		require.Equal(t, followUpTimer, fired.Name)
		require.Equal(t, clock.Now().UnixMilli(), fired.NowMs)
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
}

func TestCancelTimerPreventsFire(t *testing.T) {
	t.Parallel()

	rt := timerRuntime(actor.RealClock{})
	defer rt.Stop()

	inputs := make(chan actor.Input, 1)
	emit := func(in actor.Input) { inputs <- in }

	rt.HandleEffects(context.Background(),
		[]actor.Effect{effStartTimer{Name: followUpTimer, AfterMs: 100}}, emit)
	rt.HandleEffects(context.Background(),
		[]actor.Effect{effCancelTimer{Name: followUpTimer}}, emit)

	select {
	case in := <-inputs:
		t.Fatalf("canceled timer fired: %#v", in)
	case <-time.After(300 * time.Millisecond):
	}
}
