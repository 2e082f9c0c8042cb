package game

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewCharacter(t *testing.T) {
	c := NewCharacter("abc", "Mira", BaseAttributes{Constitution: 8, Magic: 6, Willpower: 4})

	if c.Derived.MaxHP != 8 || c.Derived.MaxMP != 12 || c.Derived.MaxDailyFatigue != 20 {
		t.Errorf("derived: got %+v", c.Derived)
	}
	if c.Derived.HP != c.Derived.MaxHP || c.Derived.Focus != c.Derived.MaxFocus {
		t.Errorf("current values should start at max: %+v", c.Derived)
	}
}

func TestRoster_AddGet(t *testing.T) {
	r := NewRoster()
	c := NewCharacter("abc", "Mira", BaseAttributes{Constitution: 8, Magic: 6, Willpower: 4})

	if err := r.Add(c); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Add(c); err == nil {
		t.Fatal("expected duplicate add to fail")
	}

	got := r.Get("abc")
	if got == nil {
		t.Fatal("expected character")
	}
	if *got != *c {
		t.Errorf("got %+v, want %+v", got, c)
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unknown id")
	}
	if r.Len() != 1 {
		t.Errorf("len: got %d, want 1", r.Len())
	}
}

func TestRoster_ReturnsCopies(t *testing.T) {
	r := NewRoster()
	c := NewCharacter("abc", "Mira", BaseAttributes{Constitution: 8})
	if err := r.Add(c); err != nil {
		t.Fatalf("add: %v", err)
	}

	c.Derived.HP = 0
	got := r.Get("abc")
	got.Name = "changed"

	again := r.Get("abc")
	if again.Derived.HP != 8 || again.Name != "Mira" {
		t.Errorf("roster state leaked: %+v", again)
	}
}

func TestRoster_Concurrent(t *testing.T) {
	r := NewRoster()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("c%d", i)
			if err := r.Add(NewCharacter(id, id, BaseAttributes{Constitution: i})); err != nil {
				t.Errorf("add %s: %v", id, err)
			}
			_ = r.Get(id)
		}(i)
	}
	wg.Wait()

	if r.Len() != 50 {
		t.Errorf("len: got %d, want 50", r.Len())
	}
}
