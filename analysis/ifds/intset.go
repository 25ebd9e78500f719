// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
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

package ifds

import "golang.org/x/tools/container/intsets"

// IntSet is a sparse set of non-negative dataflow fact ids. It is the
// solver's façade over the bitset implementation; every memo table and
// every flow function communicates facts through IntSet rather than raw
// slices so that large fact domains stay cheap to store and to union.
type IntSet struct {
	bits intsets.Sparse
}

// NewIntSet returns an empty set.
func NewIntSet() *IntSet {
	return &IntSet{}
}

// Singleton returns a set containing exactly x.
func Singleton(x int) *IntSet {
	s := NewIntSet()
	s.Insert(x)
	return s
}

// NewIntSetOf returns a set containing the given facts.
func NewIntSetOf(xs ...int) *IntSet {
	s := NewIntSet()
	for _, x := range xs {
		s.Insert(x)
	}
	return s
}

// Contains reports whether x is a member of the set.
func (s *IntSet) Contains(x int) bool {
	if s == nil {
		return false
	}
	return s.bits.Has(x)
}

// Insert adds x to the set and reports whether the set changed.
func (s *IntSet) Insert(x int) bool {
	return s.bits.Insert(x)
}

// Remove deletes x from the set and reports whether the set changed.
func (s *IntSet) Remove(x int) bool {
	return s.bits.Remove(x)
}

// Len returns the number of elements in the set.
func (s *IntSet) Len() int {
	if s == nil {
		return 0
	}
	return s.bits.Len()
}

// IsEmpty reports whether the set has no members.
func (s *IntSet) IsEmpty() bool {
	if s == nil {
		return true
	}
	return s.bits.IsEmpty()
}

// Clone returns a copy of the set.
func (s *IntSet) Clone() *IntSet {
	c := NewIntSet()
	if s != nil {
		c.bits.Copy(&s.bits)
	}
	return c
}

// AddAll unions other into s, returning true if s changed. addAll in the
// spec's IntSet vocabulary.
func (s *IntSet) AddAll(other *IntSet) bool {
	if other == nil {
		return false
	}
	return s.bits.UnionWith(&other.bits)
}

// Union returns a new set containing the members of both s and other.
func (s *IntSet) Union(other *IntSet) *IntSet {
	u := s.Clone()
	u.AddAll(other)
	return u
}

// Equals reports whether s and other contain exactly the same facts.
func (s *IntSet) Equals(other *IntSet) bool {
	if s == nil || other == nil {
		return s.IsEmpty() && other.IsEmpty()
	}
	return s.bits.Equals(&other.bits)
}

// ForEach calls action once per member, in increasing order. It is
// implemented with a flattened loop over AsSlice rather than a callback
// dispatched from inside the bitset.
func (s *IntSet) ForEach(action func(d int)) {
	for _, d := range s.AsSlice() {
		action(d)
	}
}

// AsSlice returns the members of s as a sorted slice. Returns nil for a nil
// or empty set.
func (s *IntSet) AsSlice() []int {
	if s == nil {
		return nil
	}
	return s.bits.AppendTo(nil)
}
