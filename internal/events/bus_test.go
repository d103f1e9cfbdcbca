package events

import (
	"testing"

	"derby/internal/race"
)

var (
	testTopic  = NewTopic[int]("numbers")
	otherTopic = NewTopic[string]("words")
)

func TestPublishReachesListenersInOrder(t *testing.T) {
	bus := NewBus()
	var got []string
	Subscribe(bus, testTopic, func(n int) { got = append(got, "a") })
	Subscribe(bus, testTopic, func(n int) { got = append(got, "b") })
	Subscribe(bus, otherTopic, func(string) { got = append(got, "other") })

	Publish(bus, testTopic, 1)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected registration order [a b], got %v", got)
	}
}

func TestNestedPublishPreservesEmissionOrder(t *testing.T) {
	bus := NewBus()
	var log []int
	Subscribe(bus, testTopic, func(n int) {
		log = append(log, n)
		if n == 1 {
			Publish(bus, testTopic, 2)
			Publish(bus, testTopic, 3)
		}
	})
	Subscribe(bus, testTopic, func(n int) { log = append(log, n*10) })

	Publish(bus, testTopic, 1)
	want := []int{1, 10, 2, 20, 3, 30}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	sub := Subscribe(bus, testTopic, func(int) { calls++ })
	Publish(bus, testTopic, 1)
	sub.Unsubscribe()
	sub.Unsubscribe()
	Publish(bus, testTopic, 2)
	if calls != 1 {
		t.Fatalf("expected one delivery, got %d", calls)
	}
	if n := bus.Listeners(testTopic.Name()); n != 0 {
		t.Fatalf("expected no listeners, got %d", n)
	}
}

func TestUnsubscribeDuringDispatchSkipsListener(t *testing.T) {
	bus := NewBus()
	var second *Subscription
	secondCalls := 0
	Subscribe(bus, testTopic, func(int) { second.Unsubscribe() })
	second = Subscribe(bus, testTopic, func(int) { secondCalls++ })

	Publish(bus, testTopic, 1)
	if secondCalls != 0 {
		t.Fatalf("listener removed mid-dispatch still received the event")
	}
}

func TestGroupRelease(t *testing.T) {
	bus := NewBus()
	var g Group
	g.Add(Subscribe(bus, testTopic, func(int) {}))
	g.Add(Subscribe(bus, otherTopic, func(string) {}))
	if g.Len() != 2 {
		t.Fatalf("expected 2 tracked subscriptions, got %d", g.Len())
	}
	g.Release()
	if bus.Listeners(testTopic.Name()) != 0 || bus.Listeners(otherTopic.Name()) != 0 {
		t.Fatal("expected all listeners removed")
	}
	if g.Len() != 0 {
		t.Fatalf("expected group to be empty, got %d", g.Len())
	}
	g.Release()
}

func TestPanickingListenerDoesNotWedgeBus(t *testing.T) {
	bus := NewBus()
	sub := Subscribe(bus, testTopic, func(int) { panic("boom") })
	func() {
		defer func() { _ = recover() }()
		Publish(bus, testTopic, 1)
	}()
	sub.Unsubscribe()

	got := 0
	Subscribe(bus, testTopic, func(n int) { got = n })
	Publish(bus, testTopic, 7)
	if got != 7 {
		t.Fatalf("bus stopped delivering after a listener panic, got %d", got)
	}
}

func TestNewGameOver(t *testing.T) {
	out := race.Outcome{PlayerRank: 2, Results: []race.Result{{Agent: 4, Time: 1000}, {Agent: 1, Time: 1200}}}
	ev := NewGameOver("r1", 1, out)
	if ev.Rank != 2 || ev.RaceID != "r1" || ev.Player != 1 {
		t.Fatalf("unexpected payload %+v", ev)
	}
	if len(ev.Results) != 2 || ev.Results[0] != (Result{ID: 4, Time: 1000}) {
		t.Fatalf("unexpected results %+v", ev.Results)
	}
}
