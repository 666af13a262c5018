// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lifecycle implements the open/close state machine shared by the
// dictionaries.
package lifecycle

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ianlewis/go-wordnet"
)

// State is the lifecycle state of a dictionary.
type State int32

const (
	// Closed is the initial state.
	Closed State = iota
	Opening
	Open
	Closing
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Machine guards the state transitions of a dictionary. Transitions are
// serialized by a mutex while the current state can be read without
// blocking. The zero value is a closed machine.
type Machine struct {
	mu    sync.Mutex
	state atomic.Int32
}

// State returns the current state.
func (m *Machine) State() State {
	return State(m.state.Load())
}

// IsOpen reports whether the machine is open. It never blocks.
func (m *Machine) IsOpen() bool {
	return m.State() == Open
}

// Check returns wordnet.ErrClosed unless the machine is open.
func (m *Machine) Check() error {
	if !m.IsOpen() {
		return wordnet.ErrClosed
	}
	return nil
}

// Open moves a closed machine to Opening, calls fn and moves to Open if fn
// succeeds or back to Closed if it fails. It returns true without calling fn
// if the machine is already open and false if it is in any other state.
func (m *Machine) Open(fn func() error) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.State() {
	case Open:
		return true, nil
	case Closed:
	default:
		return false, nil
	}

	m.state.Store(int32(Opening))
	if fn != nil {
		if err := fn(); err != nil {
			m.state.Store(int32(Closed))
			return false, err
		}
	}
	m.state.Store(int32(Open))
	return true, nil
}

// Close moves the machine to Closing, calls fn to release resources and then
// moves to Closed. The machine is closed even if fn fails. Closing a closed
// machine does nothing.
func (m *Machine) Close(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.State() == Closed {
		return nil
	}
	m.state.Store(int32(Closing))
	defer m.state.Store(int32(Closed))
	if fn != nil {
		return fn()
	}
	return nil
}
