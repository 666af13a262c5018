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

package lexicon

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrHeadAlreadySet is returned when the head of a satellite sense key is
	// set more than once.
	ErrHeadAlreadySet = errors.New("sense key head already set")

	// ErrNotSatellite is returned when setting the head of a sense key that
	// is not an adjective satellite.
	ErrNotSatellite = errors.New("sense key is not an adjective satellite")
)

// SenseKey is the globally unique key of a sense, written
// lemma%ss_type:lex_filenum:lex_id:head_word:head_id.
//
// The head word and head id only exist for adjective satellites. Satellite
// keys are usually built without them and completed once with SetHead when
// the head synset has been found.
type SenseKey struct {
	lemma     string
	pos       POS
	satellite bool
	lexFile   int
	lexID     int

	mu      sync.RWMutex
	headSet bool
	head    string
	headID  int
}

// NewSenseKey returns a sense key without head fields. Adjective satellite
// keys must be completed with SetHead.
func NewSenseKey(lemma string, lexID int, pos POS, satellite bool, lexFile int) *SenseKey {
	return &SenseKey{
		lemma:     lemma,
		pos:       pos,
		satellite: satellite,
		lexFile:   lexFile,
		lexID:     lexID,
		headID:    -1,
	}
}

// NewSatelliteSenseKey returns a complete adjective satellite sense key.
func NewSatelliteSenseKey(lemma string, lexID, lexFile int, head string, headID int) *SenseKey {
	k := NewSenseKey(lemma, lexID, Adjective, true, lexFile)
	k.headSet = true
	k.head = head
	k.headID = headID
	return k
}

// Lemma returns the lemma as it was given.
func (k *SenseKey) Lemma() string { return k.lemma }

// POS returns the part of speech.
func (k *SenseKey) POS() POS { return k.pos }

// IsAdjectiveSatellite reports whether the key is for a satellite sense.
func (k *SenseKey) IsAdjectiveSatellite() bool { return k.satellite }

// LexFile returns the lexicographer file number.
func (k *SenseKey) LexFile() int { return k.lexFile }

// LexID returns the lexical id.
func (k *SenseKey) LexID() int { return k.lexID }

// SynsetType returns the synset type number: 1 to 4 for the parts of speech
// and 5 for adjective satellites.
func (k *SenseKey) SynsetType() int {
	if k.satellite {
		return 5
	}
	return k.pos.Number()
}

// Head returns the head word and head id of a satellite key. ok is false
// until the head has been set.
func (k *SenseKey) Head() (head string, headID int, ok bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.head, k.headID, k.headSet
}

// NeedsHead reports whether the key is a satellite key still missing its
// head fields.
func (k *SenseKey) NeedsHead() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.satellite && !k.headSet
}

// SetHead sets the head fields of an adjective satellite key. It may only be
// called once.
func (k *SenseKey) SetHead(head string, headID int) error {
	if !k.satellite {
		return fmt.Errorf("%w: %s", ErrNotSatellite, k.lemma)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.headSet {
		return fmt.Errorf("%w: %s", ErrHeadAlreadySet, k.lemma)
	}
	k.headSet = true
	k.head = head
	k.headID = headID
	return nil
}

// String returns the canonical form of the key. The lemma is lower cased.
func (k *SenseKey) String() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(k.lemma))
	b.WriteByte('%')
	fmt.Fprintf(&b, "%d:%02d:%02d:", k.SynsetType(), k.lexFile, k.lexID)
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.satellite && k.headSet {
		fmt.Fprintf(&b, "%s:%02d", k.head, k.headID)
	} else {
		b.WriteByte(':')
	}
	return b.String()
}

// Equal reports whether the keys are the same. The lemma is compared case
// insensitively and every other field exactly.
func (k *SenseKey) Equal(other *SenseKey) bool {
	if k == other {
		return true
	}
	if k == nil || other == nil {
		return false
	}
	if !strings.EqualFold(k.lemma, other.lemma) ||
		k.pos != other.pos ||
		k.satellite != other.satellite ||
		k.lexFile != other.lexFile ||
		k.lexID != other.lexID {
		return false
	}
	h1, id1, ok1 := k.Head()
	h2, id2, ok2 := other.Head()
	return ok1 == ok2 && h1 == h2 && id1 == id2
}
