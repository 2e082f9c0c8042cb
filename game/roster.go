package game

import (
	"fmt"
	"sync"
)

// Roster is an in-memory set of characters keyed by ID.
type Roster struct {
	characters map[string]*Character
	mu         sync.RWMutex
}

func NewRoster() *Roster {
	return &Roster{
		characters: make(map[string]*Character),
	}
}

// Add stores c. Adding an ID twice is an error.
func (r *Roster) Add(c *Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[c.ID]; exists {
		return fmt.Errorf("character %q already exists", c.ID)
	}
	stored := *c
	r.characters[c.ID] = &stored
	return nil
}

// Get returns a copy of the character, or nil if none has that ID.
func (r *Roster) Get(id string) *Character {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.characters[id]
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.characters)
}
