package events

import "testing"

func TestBusFlushOrder(t *testing.T) {
	b := NewBus(0)
	var got []Kind
	b.Subscribe(func(e Event) { got = append(got, e.Kind()) })

	b.Emit(CreatureSpawned{ID: 1})
	b.Emit(ScoreChanged{Delta: -1})
	b.Emit(WaveAdvanced{Wave: 2})
	if len(got) != 0 {
		t.Fatalf("handlers ran before Flush: %v", got)
	}

	b.Flush()
	want := []Kind{KindCreatureSpawned, KindScoreChanged, KindWaveAdvanced}
	if len(got) != len(want) {
		t.Fatalf("delivered %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBusEmitDuringFlush(t *testing.T) {
	b := NewBus(0)
	calls := 0
	b.Subscribe(func(e Event) {
		calls++
		if _, ok := e.(WaveAdvanced); ok {
			b.Emit(AutoFireToggled{Enabled: true})
		}
	})

	b.Emit(WaveAdvanced{Wave: 2})
	b.Flush()
	if calls != 1 {
		t.Fatalf("calls after first flush = %d, want 1", calls)
	}
	if b.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", b.Pending())
	}
	b.Flush()
	if calls != 2 {
		t.Errorf("calls after second flush = %d, want 2", calls)
	}
}

func TestBusDrainRetain(t *testing.T) {
	b := NewBus(3)
	for i := uint32(1); i <= 5; i++ {
		b.Emit(ProjectileRemoved{ID: i})
	}
	b.Flush()

	drained := b.Drain()
	if len(drained) != 3 {
		t.Fatalf("drained %d events, want 3", len(drained))
	}
	if first := drained[0].(ProjectileRemoved).ID; first != 3 {
		t.Errorf("oldest retained id = %d, want 3", first)
	}
	if b.Dropped() != 2 {
		t.Errorf("dropped = %d, want 2", b.Dropped())
	}
	if len(b.Drain()) != 0 {
		t.Error("second Drain should be empty")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		e    Event
		want string
	}{
		{CreatureRemoved{}, "creature_removed"},
		{EffectTriggered{}, "effect_triggered"},
		{CannonUpgraded{}, "cannon_upgraded"},
	}
	for _, tt := range tests {
		if got := tt.e.Kind().String(); got != tt.want {
			t.Errorf("Kind().String() = %q, want %q", got, tt.want)
		}
	}
}
