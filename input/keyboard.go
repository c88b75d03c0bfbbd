// Package input captures keyboard state once per frame and turns it into
// player movement.
package input

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/tools/container/intsets"
)

// KeyboardState is an immutable set of keys held during one frame.
// The zero value has no keys down.
type KeyboardState struct {
	keys *intsets.Sparse
}

// NewKeyboardState returns a state with keys held.
func NewKeyboardState(keys ...ebiten.Key) KeyboardState {
	set := &intsets.Sparse{}
	for _, k := range keys {
		set.Insert(int(k))
	}
	return KeyboardState{keys: set}
}

// Snapshot reads the keys ebiten currently reports as pressed.
func Snapshot() KeyboardState {
	return NewKeyboardState(inpututil.AppendPressedKeys(nil)...)
}

// IsKeyDown reports whether k is held.
func (s KeyboardState) IsKeyDown(k ebiten.Key) bool {
	return s.keys != nil && s.keys.Has(int(k))
}

// IsKeyUp reports whether k is not held.
func (s KeyboardState) IsKeyUp(k ebiten.Key) bool {
	return !s.IsKeyDown(k)
}

// Len is the number of held keys.
func (s KeyboardState) Len() int {
	if s.keys == nil {
		return 0
	}
	return s.keys.Len()
}

// Keys returns the held keys in ascending order.
func (s KeyboardState) Keys() []ebiten.Key {
	if s.keys == nil {
		return nil
	}
	ints := s.keys.AppendTo(nil)
	keys := make([]ebiten.Key, len(ints))
	for i, k := range ints {
		keys[i] = ebiten.Key(k)
	}
	return keys
}

// Equal reports whether both states hold the same keys.
func (s KeyboardState) Equal(o KeyboardState) bool {
	if s.Len() == 0 || o.Len() == 0 {
		return s.Len() == o.Len()
	}
	return s.keys.Equals(o.keys)
}

// Source produces one KeyboardState per frame.
type Source interface {
	Poll() KeyboardState
}

// Ebiten polls the live keyboard.
type Ebiten struct{}

// Poll snapshots the keyboard.
func (Ebiten) Poll() KeyboardState {
	return Snapshot()
}

// Script replays a fixed sequence of frames, repeating from the start when
// it runs out. An empty script never presses anything.
type Script struct {
	frames []KeyboardState
	next   int
}

// NewScript returns a script playing one frame per key list.
func NewScript(frames ...[]ebiten.Key) *Script {
	s := &Script{frames: make([]KeyboardState, len(frames))}
	for i, keys := range frames {
		s.frames[i] = NewKeyboardState(keys...)
	}
	return s
}

// NewRandomScript builds a deterministic random walk over the given bindings.
// Each chosen direction is held for a random run of frames and runs may press
// two bindings at once so key precedence gets exercised.
func NewRandomScript(seed uint64, frames int, b Bindings) *Script {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	keys := []ebiten.Key{b.Up, b.Down, b.Left, b.Right}

	s := &Script{frames: make([]KeyboardState, 0, frames)}
	for len(s.frames) < frames {
		var held []ebiten.Key
		switch n := rng.IntN(6); {
		case n == 0:
		case n == 5:
			held = []ebiten.Key{keys[rng.IntN(4)], keys[rng.IntN(4)]}
		default:
			held = []ebiten.Key{keys[n-1]}
		}
		state := NewKeyboardState(held...)
		for run := rng.IntN(30) + 1; run > 0 && len(s.frames) < frames; run-- {
			s.frames = append(s.frames, state)
		}
	}
	return s
}

// Poll returns the next frame, wrapping at the end.
func (s *Script) Poll() KeyboardState {
	if len(s.frames) == 0 {
		return KeyboardState{}
	}
	state := s.frames[s.next]
	s.next = (s.next + 1) % len(s.frames)
	return state
}

// Len is the number of frames before the script repeats.
func (s *Script) Len() int {
	return len(s.frames)
}

// Reset restarts from the first frame.
func (s *Script) Reset() {
	s.next = 0
}
