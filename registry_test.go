package main

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

type nullSink struct{}

func (nullSink) WriteLine(string) error { return nil }

func TestTryRegisterConcurrentSameNickname(t *testing.T) {
	registry := NewRegistry()
	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- registry.TryRegister("alice", nullSink{})
		}()
	}
	wg.Wait()
	close(results)

	admitted := 0
	for err := range results {
		if err == nil {
			admitted++
		} else if !errors.Is(err, ErrNicknameTaken) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if admitted != 1 {
		t.Errorf("expected exactly one admission, got %d", admitted)
	}
}

func TestTryRegisterBlank(t *testing.T) {
	registry := NewRegistry()
	for _, nickname := range []string{"", " ", "   ", "\t"} {
		if err := registry.TryRegister(nickname, nullSink{}); !errors.Is(err, ErrNicknameBlank) {
			t.Errorf("nickname %q: expected ErrNicknameBlank, got %v", nickname, err)
		}
	}
}

func TestUnregisterIdempotent(t *testing.T) {
	registry := NewRegistry()
	if err := registry.TryRegister("alice", nullSink{}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	registry.Unregister("alice")
	registry.Unregister("alice")
	if err := registry.TryRegister("alice", nullSink{}); err != nil {
		t.Errorf("nickname not released: %v", err)
	}
}

func TestSetRoomMissingNickname(t *testing.T) {
	registry := NewRegistry()
	// gone nickname: must be a silent no-op
	registry.SetRoom("ghost", 3)
	if rooms := registry.RoomsInUse(); len(rooms) != 0 {
		t.Errorf("expected no rooms, got %v", rooms)
	}
}

func TestRoomsInUseLiveness(t *testing.T) {
	registry := NewRegistry()
	for _, nickname := range []string{"alice", "bob", "carol"} {
		if err := registry.TryRegister(nickname, nullSink{}); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}
	registry.SetRoom("alice", 2)
	registry.SetRoom("bob", 1)
	registry.SetRoom("carol", 2)

	rooms := registry.RoomsInUse()
	if len(rooms) != 2 || rooms[0] != 1 || rooms[1] != 2 {
		t.Errorf("expected [1 2], got %v", rooms)
	}

	registry.SetRoom("bob", 0)
	rooms = registry.RoomsInUse()
	if len(rooms) != 1 || rooms[0] != 2 {
		t.Errorf("expected [2] after bob left, got %v", rooms)
	}

	registry.Unregister("alice")
	registry.Unregister("carol")
	if rooms := registry.RoomsInUse(); len(rooms) != 0 {
		t.Errorf("expected no rooms after everyone left, got %v", rooms)
	}
}

func TestOccupantsOf(t *testing.T) {
	registry := NewRegistry()
	for _, nickname := range []string{"alice", "bob", "carol"} {
		registry.TryRegister(nickname, nullSink{})
	}
	registry.SetRoom("alice", 1)
	registry.SetRoom("bob", 1)

	occupants := registry.OccupantsOf(1)
	if len(occupants) != 2 {
		t.Fatalf("expected 2 occupants, got %d", len(occupants))
	}
	seen := map[string]bool{}
	for _, occupant := range occupants {
		seen[occupant.Nickname] = true
	}
	if !seen["alice"] || !seen["bob"] {
		t.Errorf("wrong occupants: %v", seen)
	}
}

func TestNextRoomIDConcurrent(t *testing.T) {
	registry := NewRegistry()
	const calls = 100
	var wg sync.WaitGroup
	ids := make(chan int, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- registry.NextRoomID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		if id < 1 || id > calls {
			t.Errorf("id %d out of range", id)
		}
		if seen[id] {
			t.Errorf("id %d issued twice", id)
		}
		seen[id] = true
	}
}

func TestNextRoomIDMonotonic(t *testing.T) {
	registry := NewRegistry()
	previous := 0
	for i := 0; i < 10; i++ {
		id := registry.NextRoomID()
		if id <= previous {
			t.Fatalf("id %d not greater than %d", id, previous)
		}
		previous = id
	}
}

func ExampleRegistry_RoomsInUse() {
	registry := NewRegistry()
	registry.TryRegister("alice", nullSink{})
	registry.SetRoom("alice", registry.NextRoomID())
	fmt.Println(registry.RoomsInUse())
	// Output: [1]
}
