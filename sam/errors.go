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

import "errors"

// Sentinel errors, one per error taxonomy kind: domain, state, and
// capacity errors. Wrap sites use fmt.Errorf("%w::FuncName", err) so
// errors.Is keeps working while the message still names the function
// that observed the failure.
var (
	// ErrInvalidMaxlenLimit is a domain error: maxlen_limit was 0 or 1.
	ErrInvalidMaxlenLimit = errors.New("sam: maxlen_limit must be < 0 (unlimited) or >= 2")

	// ErrNotFinalized is a state error: a query was issued before finalize.
	ErrNotFinalized = errors.New("sam: engine is not finalized")

	// ErrAlreadyFinalized is a state error: append or finalize was called
	// after finalize already ran.
	ErrAlreadyFinalized = errors.New("sam: engine is already finalized")

	// ErrArenaExhausted is a capacity error: the arena cannot allocate
	// another state. Fatal to the engine instance.
	ErrArenaExhausted = errors.New("sam: arena exhausted")
)
