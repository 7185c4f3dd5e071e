package trie

import (
	"fmt"
	"math"
	"sort"
)

// Stats reports structural information about a Trie: node counts,
// container densities, and the alphabet encountered while adding. Used by
// the admin "stats" endpoint and by tests pinning trie shape.
type Stats struct {
	Depth             int
	PrefixNodes       int
	FullContainers    int
	FullItems         int
	SuffixContainers  int
	SuffixItems       int
	Branching         float64
	FullDensity       float64
	SuffixDensity     float64
	RatioFullToPrefix float64
	RatioSfxToPrefix  float64
	RatioSfxToFullCtr float64
	RatioSfxToFullIDs float64
	Alphabet          string
	Indexed           int
}

// Analyze walks the whole trie once and computes Stats.
func (t *Trie) Analyze() Stats {
	var s Stats
	analyzeNode(t.root, 0, &s)

	if s.Depth > 0 {
		if s.PrefixNodes > 0 && s.Depth > 1 {
			s.Branching = round2(math.Log(float64(s.PrefixNodes)) / math.Log(float64(s.Depth)))
		}
		if s.FullContainers > 0 {
			s.FullDensity = round2(float64(s.FullItems) / float64(s.FullContainers))
		}
		if s.SuffixContainers > 0 {
			s.SuffixDensity = round2(float64(s.SuffixItems) / float64(s.SuffixContainers))
		}
		if s.PrefixNodes > 0 {
			s.RatioFullToPrefix = round2(float64(s.FullContainers) / float64(s.PrefixNodes))
			s.RatioSfxToPrefix = round2(float64(s.SuffixContainers) / float64(s.PrefixNodes))
		}
		if s.FullContainers > 0 {
			s.RatioSfxToFullCtr = round2(float64(s.SuffixContainers) / float64(s.FullContainers))
		}
		if s.FullItems > 0 {
			s.RatioSfxToFullIDs = round2(float64(s.SuffixItems) / float64(s.FullItems))
		}
	}

	runes := t.Alphabet()
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	var b []byte
	b = append(b, '`')
	for _, r := range runes {
		b = append(b, []byte(string(r))...)
	}
	b = append(b, '`')
	s.Alphabet = string(b)
	s.Indexed = t.indexed

	return s
}

func analyzeNode(n *node, depth int, s *Stats) {
	if depth > s.Depth {
		s.Depth = depth
	}
	if len(n.fullIDs) > 0 {
		s.FullContainers++
		s.FullItems += len(n.fullIDs)
	}
	if len(n.suffixID) > 0 {
		s.SuffixContainers++
		s.SuffixItems += len(n.suffixID)
	}
	for _, child := range n.children {
		s.PrefixNodes++
		analyzeNode(child, depth+1, s)
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// String renders Stats the way the reference implementation's
// `Engine.info()` prints it: one "Key: value" line per field, sorted.
func (s Stats) String() string {
	return fmt.Sprintf(
		"Alphabet: %s\nBranching: %.2f\nDepth: %d\nFull_containers: %d\nFull_density: %.2f\nFull_items: %d\n"+
			"Indexed: %d\nPrefix_nodes: %d\nRatio_full_to_prefix: %.2f\nRatio_sfx_to_full_ctr: %.2f\n"+
			"Ratio_sfx_to_full_ids: %.2f\nRatio_sfx_to_prefix: %.2f\nSuffix_containers: %d\nSuffix_density: %.2f\nSuffix_items: %d",
		s.Alphabet, s.Branching, s.Depth, s.FullContainers, s.FullDensity, s.FullItems,
		s.Indexed, s.PrefixNodes, s.RatioFullToPrefix, s.RatioSfxToFullCtr,
		s.RatioSfxToFullIDs, s.RatioSfxToPrefix, s.SuffixContainers, s.SuffixDensity, s.SuffixItems,
	)
}
