package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/mirrorshot/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("destroying twice should report false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d live entities, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestStaleHandleDoesNotResolveAfterReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[string]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), stringPtr("old")); err != nil {
		t.Fatalf("add: %v", err)
	}
	DestroyEntity(w, old)

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v after %v", reused, old)
	}
	if reused == old {
		t.Fatalf("reused slot must carry a new generation")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle must not be alive")
	}
	if _, ok := Get(w, reused, h.Kind()); ok {
		t.Fatalf("components of the destroyed entity must not leak to the reused slot")
	}
	if err := Add(w, old, h.Kind(), stringPtr("x")); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestComponentsAddGetRemove(t *testing.T) {
	w := NewWorld()
	hInt := component.NewComponent[int]()
	hStr := component.NewComponent[string]()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, hInt.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hInt.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				if Has(w, e2, hInt.Kind()) {
					t.Fatalf("e2 should not have the int component")
				}
			},
			teardown: func() bool { return Remove(w, e1, hInt.Kind()) },
		},
		{
			name: "add_str_to_both",
			setup: func() error {
				if err := Add(w, e1, hStr.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, hStr.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if got := w.Query(hStr.Kind()); len(got) != 2 {
					t.Fatalf("expected 2 entities with strings, got %v", got)
				}
			},
			teardown: func() bool { return Remove(w, e1, hStr.Kind()) },
		},
		{
			name:  "nil_value_rejected",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				if err := Add[int](w, e1, hInt.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
					t.Fatalf("expected ErrNilComponent, got %v", err)
				}
			},
			teardown: func() bool { return true },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestForEachVariants(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	mustAdd := func(e Entity, k component.ComponentKind[int], v int) {
		t.Helper()
		if err := Add(w, e, k, intPtr(v)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	mustAdd(e1, ka, 1)
	mustAdd(e2, ka, 2)
	mustAdd(e2, kb, 3)
	mustAdd(e2, kc, 4)
	mustAdd(e3, kb, 5)

	var one []Entity
	ForEach(w, ka, func(e Entity, _ *int) { one = append(one, e) })
	if len(one) != 2 {
		t.Fatalf("ForEach: expected e1 and e2, got %v", one)
	}

	var two []Entity
	ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { two = append(two, e) })
	if len(two) != 1 || two[0] != e2 {
		t.Fatalf("ForEach2: expected only e2, got %v", two)
	}

	sum := 0
	ForEach3(w, ka, kb, kc, func(_ Entity, a, b, c *int) { sum = *a + *b + *c })
	if sum != 9 {
		t.Fatalf("ForEach3: expected sum 9, got %d", sum)
	}

	kd := component.NewComponentKind[int]()
	called := false
	ForEach4(w, ka, kb, kc, kd, func(Entity, *int, *int, *int, *int) { called = true })
	if called {
		t.Fatalf("ForEach4 must not visit anything when a store is missing")
	}
}

func TestForEachToleratesDestroyInCallback(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, k, intPtr(i)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	visited := 0
	ForEach(w, k, func(e Entity, _ *int) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 5 {
		t.Fatalf("expected 5 visits, got %d", visited)
	}
	if got := w.Query(k); len(got) != 0 {
		t.Fatalf("expected empty store, got %v", got)
	}
}

func TestSchedulerAdvancesClock(t *testing.T) {
	w := NewWorld()
	var seen []float64
	s := NewScheduler(systemFunc(func(w *World) {
		seen = append(seen, w.DeltaTime())
		w.Events().Push(Event{Kind: EventShotFired})
	}))

	s.Update(w, 0.5)
	if w.Events().Len() != 1 {
		t.Fatalf("expected the tick's event to be queued")
	}
	s.Update(w, 0.25)

	if w.Ticks() != 2 || w.Elapsed() != 0.75 {
		t.Fatalf("unexpected clock ticks=%d elapsed=%v", w.Ticks(), w.Elapsed())
	}
	if len(seen) != 2 || seen[1] != 0.25 {
		t.Fatalf("systems saw dt %v", seen)
	}
	if got := w.Events().Drain(); len(got) != 1 {
		t.Fatalf("undrained events of the previous tick should be dropped, got %d", len(got))
	}
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }
