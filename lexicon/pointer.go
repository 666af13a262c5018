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
)

// ErrUnknownPointer indicates a pointer symbol that is not known.
var ErrUnknownPointer = errors.New("unknown pointer symbol")

// Pointer is a relation type. The same pointer may relate synsets (semantic
// relation) or senses (lexical relation).
type Pointer struct {
	// Symbol is the symbol used in data and index files.
	Symbol string

	// Name is a human readable name.
	Name string
}

// String returns the pointer name.
func (p *Pointer) String() string {
	return p.Name
}

// Pointers known in WordNet 3.x data files.
var (
	AlsoSee               = &Pointer{"^", "Also See"}
	Antonym               = &Pointer{"!", "Antonym"}
	Attribute             = &Pointer{"=", "Attribute"}
	Cause                 = &Pointer{">", "Cause"}
	DerivationallyRelated = &Pointer{"+", "Derivationally related form"}
	DerivedFromAdjective  = &Pointer{"\\", "Derived from adjective"}
	Entailment            = &Pointer{"*", "Entailment"}
	Hypernym              = &Pointer{"@", "Hypernym"}
	HypernymInstance      = &Pointer{"@i", "Instance Hypernym"}
	Hyponym               = &Pointer{"~", "Hyponym"}
	HyponymInstance       = &Pointer{"~i", "Instance Hyponym"}
	HolonymMember         = &Pointer{"#m", "Member holonym"}
	HolonymSubstance      = &Pointer{"#s", "Substance holonym"}
	HolonymPart           = &Pointer{"#p", "Part holonym"}
	MeronymMember         = &Pointer{"%m", "Member meronym"}
	MeronymSubstance      = &Pointer{"%s", "Substance meronym"}
	MeronymPart           = &Pointer{"%p", "Part meronym"}
	Participle            = &Pointer{"<", "Participle"}
	Pertainym             = &Pointer{"\\", "Pertainym (pertains to nouns)"}
	Region                = &Pointer{";r", "Domain of synset - REGION"}
	RegionMember          = &Pointer{"-r", "Member of this domain - REGION"}
	SimilarTo             = &Pointer{"&", "Similar To"}
	Topic                 = &Pointer{";c", "Domain of synset - TOPIC"}
	TopicMember           = &Pointer{"-c", "Member of this domain - TOPIC"}
	Usage                 = &Pointer{";u", "Domain of synset - USAGE"}
	UsageMember           = &Pointer{"-u", "Member of this domain - USAGE"}
	VerbGroup             = &Pointer{"$", "Verb Group"}
	Domain                = &Pointer{";", "Domain"}
	DomainMember          = &Pointer{"-", "Member of Domain"}
)

var pointersBySymbol = func() map[string]*Pointer {
	m := map[string]*Pointer{}
	for _, p := range []*Pointer{
		AlsoSee, Antonym, Attribute, Cause, DerivationallyRelated, Entailment,
		Hypernym, HypernymInstance, Hyponym, HyponymInstance, HolonymMember,
		HolonymSubstance, HolonymPart, MeronymMember, MeronymSubstance,
		MeronymPart, Participle, Pertainym, Region, RegionMember, SimilarTo,
		Topic, TopicMember, Usage, UsageMember, VerbGroup, Domain, DomainMember,
	} {
		m[p.Symbol] = p
	}
	return m
}()

// PointerFor returns the pointer for the given symbol. The backslash symbol
// means "derived from adjective" for adverbs and "pertainym" otherwise.
func PointerFor(symbol string, pos POS) (*Pointer, error) {
	if symbol == DerivedFromAdjective.Symbol && pos == Adverb {
		return DerivedFromAdjective, nil
	}
	p, ok := pointersBySymbol[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPointer, symbol)
	}
	return p, nil
}
