// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	algo.Init("default")
}

// FuzzyResult is the outcome of matching one candidate.
type FuzzyResult struct {
	// Score is fzf's match quality; 0 means no match.
	Score int

	// Positions are the matched rune indices in ascending order, for
	// highlighting.
	Positions []int
}

// NewFuzzySlab allocates the scratch memory fzf's V2 algorithm uses.
// Reuse one slab across calls from the same goroutine; a slab must not
// be shared between goroutines.
func NewFuzzySlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// FuzzyMatch scores text against pattern with fzf's V2 algorithm,
// case-insensitively. A nil slab makes fzf fall back to its own
// allocations. An empty pattern matches nothing (score 0).
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))

	result, positions := algo.FuzzyMatchV2(false, false, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}

	match := FuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = append([]int(nil), (*positions)...)
		sort.Ints(match.Positions)
	}
	return match
}

// Ranked pairs an item with its index in the unfiltered input and its
// match result.
type Ranked[T any] struct {
	Item  T
	Index int
	Match FuzzyResult
}

// RankFuzzy filters items to those whose key matches query and orders
// them by descending score. Ties keep input order. An empty query
// keeps every item in input order with zero scores.
func RankFuzzy[T any](items []T, query string, key func(T) string, slab *util.Slab) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(items))
	if query == "" {
		for index, item := range items {
			ranked = append(ranked, Ranked[T]{Item: item, Index: index})
		}
		return ranked
	}

	pattern := []rune(query)
	for index, item := range items {
		match := FuzzyMatch(key(item), pattern, slab)
		if match.Score > 0 {
			ranked = append(ranked, Ranked[T]{Item: item, Index: index, Match: match})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Match.Score > ranked[j].Match.Score
	})
	return ranked
}
