// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package sam

import (
	"fmt"

	"github.com/cnt-dev/cnt.sam/ints"
)

// StateRef is an opaque handle into an arena. It remains valid across
// any number of subsequent allocations; it is never a raw pointer into
// a relocating buffer.
type StateRef int32

// EMPTY means "no state". It is distinct from the handle of root, which
// is always allocated first (handle 0).
const EMPTY StateRef = -1

// Symbol is an opaque ingested token. Equality is the only operation the
// engine requires of it.
type Symbol int64

// state is one equivalence class of right-extensions: an automaton node.
type state struct {
	link   StateRef
	trans  mapT[Symbol, StateRef]
	maxlen int
	touch  int
}

// minlen is maxlen(link)+1, or 0 when link is EMPTY (i.e. this is root).
// The factors represented by this state have length in [minlen, maxlen].
func (a *arena) minlen(s *state) int {
	if s.link == EMPTY {
		return 0
	}
	return a.get(s.link).maxlen + 1
}

// span returns the half-open interval [minlen, maxlen+1) of factor
// lengths this state represents, recast into the half-open
// ints.Interval convention from the closed [minlen, maxlen] range a
// state's equivalence class spans.
func (a *arena) span(s *state) ints.Interval {
	return ints.Interval{Start: a.minlen(s), End: s.maxlen + 1}
}

// arena is contiguous, append-only storage of states indexed by small
// integer handles (StateRef). Handles remain valid across any number of
// subsequent newState calls: growing the backing slice never changes
// the index of an already-allocated state, and elements are pointers so
// a slice grow-and-copy never invalidates state contents either.
type arena struct {
	states   []*state
	maxCount int // 0 means unlimited
}

func newArena(maxCount int) *arena {
	return &arena{maxCount: maxCount}
}

// newState allocates a state with zeroed attributes and link = EMPTY.
func (a *arena) newState() (StateRef, error) {
	if a.maxCount > 0 && len(a.states) >= a.maxCount {
		return EMPTY, fmt.Errorf("%w::newState", ErrArenaExhausted)
	}
	ref := StateRef(len(a.states))
	a.states = append(a.states, &state{
		link:  EMPTY,
		trans: newMapT[Symbol, StateRef](),
	})
	return ref, nil
}

// get returns the state at ref. ref must be a handle previously returned
// by newState on this arena; an out-of-range ref indicates an internal
// invariant violation, not a caller error, so this panics rather than
// returning an error.
func (a *arena) get(ref StateRef) *state {
	if ref < 0 || int(ref) >= len(a.states) {
		panic(fmt.Sprintf("sam: invalid StateRef %d (arena has %d states)", ref, len(a.states)))
	}
	return a.states[ref]
}

func (a *arena) len() int {
	return len(a.states)
}

func isEmpty(ref StateRef) bool {
	return ref == EMPTY
}
