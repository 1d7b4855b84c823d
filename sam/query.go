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
	"math"

	"github.com/cnt-dev/cnt.sam/ints"
)

// DefaultCap is the overflow guard OccurDegree uses when the caller
// does not have a more specific value in mind.
const DefaultCap = 1000.0

// Walk follows factor symbol by symbol starting from root. If any
// transition is missing it returns EMPTY. An empty factor returns
// EMPTY, not root: the queries built on Walk are not meaningful on the
// empty factor.
func (e *Engine) Walk(factor []Symbol) (StateRef, error) {
	if !e.finalized {
		return EMPTY, fmt.Errorf("%w::Walk", ErrNotFinalized)
	}
	if len(factor) == 0 {
		return EMPTY, nil
	}
	cur := e.root
	for _, symbol := range factor {
		next, ok := e.arena.get(cur).trans.at(symbol)
		if !ok {
			return EMPTY, nil
		}
		cur = next
	}
	return cur, nil
}

// OccurCount returns how many times factor occurs in the ingested
// sequence, or -1 if factor never occurs. Under a maxlen-limited
// engine this count is approximate: touch at a reused state is a
// heuristic, not the classical SAM endpos-set size.
func (e *Engine) OccurCount(factor []Symbol) (int, error) {
	state, err := e.Walk(factor)
	if err != nil {
		return 0, fmt.Errorf("%w::OccurCount", err)
	}
	if isEmpty(state) {
		return -1, nil
	}
	return e.arena.get(state).touch, nil
}

// OccurDegree measures how non-random factor is under a unigram
// background model built from symbol_cnt/symbol_total:
//
//	log_prob = log(touch) - Σ log(symbol_cnt[c]) + (len(factor)-1)·log(symbol_total)
//
// cap > 0 enables an overflow guard: if log_prob's exponential would
// exceed cap, cap is returned instead. cap <= 0 disables the guard.
// Returns -1.0 if factor never occurs.
func (e *Engine) OccurDegree(factor []Symbol, cap float64) (float64, error) {
	occur, err := e.OccurCount(factor)
	if err != nil {
		return 0, fmt.Errorf("%w::OccurDegree", err)
	}
	if occur < 0 {
		return -1.0, nil
	}

	logProb := math.Log(float64(occur))
	for _, symbol := range factor {
		logProb -= math.Log(float64(e.countOf(symbol)))
	}
	logProb += float64(len(factor)-1) * math.Log(float64(e.symbolTotal))

	if cap > 0 && logProb > math.Log(cap) {
		return cap, nil
	}
	return math.Exp(logProb), nil
}

// OutCount returns the number of transitions out of Walk(factor), or
// -1 if factor never occurs.
func (e *Engine) OutCount(factor []Symbol) (int, error) {
	state, err := e.Walk(factor)
	if err != nil {
		return 0, fmt.Errorf("%w::OutCount", err)
	}
	if isEmpty(state) {
		return -1, nil
	}
	return e.arena.get(state).trans.len(), nil
}

// OutDegree approximates the probability of extending factor by symbol,
// given occurrence counts: exp(log(touch(next)) - log(touch(state))).
// Returns -1.0 if factor never occurs or never extends by symbol.
func (e *Engine) OutDegree(factor []Symbol, symbol Symbol) (float64, error) {
	state, err := e.Walk(factor)
	if err != nil {
		return 0, fmt.Errorf("%w::OutDegree", err)
	}
	if isEmpty(state) {
		return -1.0, nil
	}
	next, ok := e.arena.get(state).trans.at(symbol)
	if !ok {
		return -1.0, nil
	}
	stateTouch := e.arena.get(state).touch
	nextTouch := e.arena.get(next).touch
	return math.Exp(math.Log(float64(nextTouch)) - math.Log(float64(stateTouch))), nil
}

// Coverage returns the union of [minlen, maxlen] factor-length spans
// represented by every allocated state, as half-open intervals. This is
// a diagnostic aggregate over lengths only: it does not expose which
// states or transitions produced it, since the automaton graph itself
// stays internal to the package.
func (e *Engine) Coverage() (ints.Intervals, error) {
	if !e.finalized {
		return nil, fmt.Errorf("%w::Coverage", ErrNotFinalized)
	}
	var out ints.Intervals
	for i := 0; i < e.arena.len(); i++ {
		out = append(out, e.arena.span(e.arena.get(StateRef(i))))
	}
	out.Compress()
	return out, nil
}
