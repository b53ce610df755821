package main

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	ErrNicknameTaken = errors.New("nickname already in use")
	ErrNicknameBlank = errors.New("nickname is blank")
)

type Occupant struct {
	Nickname string
	Sink     Sink
}

type clientRecord struct {
	sink Sink
	room int
}

// Registry is the shared table of connected clients. Every handler reads and
// mutates it, so all access goes through one lock.
type Registry struct {
	clients  map[string]*clientRecord
	lock     sync.Mutex
	lastRoom atomic.Int64
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*clientRecord)}
}

// TryRegister admits nickname into the lobby. Exactly one of several
// concurrent attempts with the same nickname wins.
func (r *Registry) TryRegister(nickname string, sink Sink) error {
	if strings.TrimSpace(nickname) == "" {
		return ErrNicknameBlank
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, taken := r.clients[nickname]; taken {
		return ErrNicknameTaken
	}
	r.clients[nickname] = &clientRecord{sink: sink}
	connectedClients.Inc()
	return nil
}

// Unregister removes the nickname and its room assignment in one step.
// Calling it for an unknown nickname is a no-op.
func (r *Registry) Unregister(nickname string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.clients[nickname]; ok {
		delete(r.clients, nickname)
		connectedClients.Dec()
	}
}

// SetRoom moves nickname to room. Room 0 is the lobby. Does nothing if the
// nickname is already gone (handler racing its own disconnect).
func (r *Registry) SetRoom(nickname string, room int) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if record, ok := r.clients[nickname]; ok {
		record.room = room
	}
}

func (r *Registry) RoomOf(nickname string) (int, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	record, ok := r.clients[nickname]
	if !ok {
		return 0, false
	}
	return record.room, true
}

// RoomsInUse returns a sorted snapshot of occupied room ids. A room exists
// only while someone is assigned to it, so liveness is always computed here,
// never cached.
func (r *Registry) RoomsInUse() []int {
	r.lock.Lock()
	defer r.lock.Unlock()
	seen := make(map[int]bool)
	rooms := []int{}
	for _, record := range r.clients {
		if record.room != 0 && !seen[record.room] {
			seen[record.room] = true
			rooms = append(rooms, record.room)
		}
	}
	sort.Ints(rooms)
	return rooms
}

// OccupantsOf returns a snapshot of the clients currently assigned to room.
func (r *Registry) OccupantsOf(room int) []Occupant {
	r.lock.Lock()
	defer r.lock.Unlock()
	occupants := []Occupant{}
	for nickname, record := range r.clients {
		if record.room == room {
			occupants = append(occupants, Occupant{nickname, record.sink})
		}
	}
	return occupants
}

// NextRoomID issues room ids starting at 1, strictly increasing and never
// reused. Needs no coordination with the client table.
func (r *Registry) NextRoomID() int {
	return int(r.lastRoom.Add(1))
}
