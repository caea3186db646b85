package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/fpcontroller/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			want := c.create
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second destroy should report false")
				}
				want--
			}
			if got := len(Entities(w)); got != want {
				t.Fatalf("expected %d entities, got %d", want, got)
			}
		})
	}
}

func TestRecycledSlotRejectsStaleHandle(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]("count")

	old := CreateEntity(w)
	if err := Add(w, old, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %s after %s", fresh, old)
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reported alive")
	}
	if Has(w, fresh, k) {
		t.Fatalf("recycled entity inherited a component")
	}
	if err := Add(w, old, k, intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]("count")
	e := CreateEntity(w)

	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{"nil_value", func(t *testing.T) {
			if err := Add[int](w, e, k, nil); !errors.Is(err, component.ErrNilComponent) {
				t.Fatalf("expected ErrNilComponent, got %v", err)
			}
		}},
		{"invalid_kind", func(t *testing.T) {
			var zero component.ComponentKind[int]
			if err := Add(w, e, zero, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
				t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
			}
		}},
		{"add_get_replace", func(t *testing.T) {
			if err := Add(w, e, k, intPtr(10)); err != nil {
				t.Fatal(err)
			}
			if err := Add(w, e, k, intPtr(11)); err != nil {
				t.Fatal(err)
			}
			v, ok := Get(w, e, k)
			if !ok || *v != 11 {
				t.Fatalf("expected 11, got %v ok=%v", v, ok)
			}
		}},
		{"pointer_is_shared", func(t *testing.T) {
			v, _ := Get(w, e, k)
			*v = 42
			again, _ := Get(w, e, k)
			if *again != 42 {
				t.Fatalf("expected mutation through pointer, got %d", *again)
			}
		}},
		{"remove", func(t *testing.T) {
			if !Remove(w, e, k) {
				t.Fatalf("remove should succeed")
			}
			if Remove(w, e, k) || Has(w, e, k) {
				t.Fatalf("component still present after remove")
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEachIntersections(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]("count")
	kb := component.NewComponentKind[int]("count")
	kc := component.NewComponentKind[int]("count")
	kd := component.NewComponentKind[int]("count")

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	dead := CreateEntity(w)

	for _, e := range []Entity{e1, e2, e3, dead} {
		if err := Add(w, e, ka, intPtr(1)); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []Entity{e2, e3, dead} {
		if err := Add(w, e, kb, intPtr(2)); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []Entity{e2, dead} {
		if err := Add(w, e, kc, intPtr(3)); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, e, kd, intPtr(4)); err != nil {
			t.Fatal(err)
		}
	}
	DestroyEntity(w, dead)

	var one, two, three, four []Entity
	ForEach(w, ka, func(e Entity, _ *int) { one = append(one, e) })
	ForEach2(w, ka, kb, func(e Entity, _, _ *int) { two = append(two, e) })
	ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { three = append(three, e) })
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { four = append(four, e) })

	if len(one) != 3 {
		t.Fatalf("ForEach: expected 3, got %v", one)
	}
	if len(two) != 2 {
		t.Fatalf("ForEach2: expected 2, got %v", two)
	}
	if len(three) != 1 || three[0] != e2 {
		t.Fatalf("ForEach3: expected only e2, got %v", three)
	}
	if len(four) != 1 || four[0] != e2 {
		t.Fatalf("ForEach4: expected only e2, got %v", four)
	}

	missing := component.NewComponentKind[string]("label")
	ForEach2(w, ka, missing, func(e Entity, _ *int, _ *string) {
		t.Fatalf("unexpected entity %s with missing store", e)
	})
}

func TestForEachToleratesRemoval(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]("count")
	for i := range 4 {
		if err := Add(w, CreateEntity(w), k, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, k, func(e Entity, _ *int) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
	if _, ok := First(w, k); ok {
		t.Fatalf("expected empty store")
	}
}
