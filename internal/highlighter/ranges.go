package highlighter

import (
	"sort"

	"github.com/bethropolis/tidelex/internal/types"
)

// rangeSet accepts candidate ranges in order. Comments evict whatever they
// overlap; any other range is dropped if it overlaps an accepted one.
type rangeSet struct {
	accepted []types.Span
}

func (s *rangeSet) add(r types.Span) {
	if r.Len() <= 0 {
		return
	}
	if r.Category == types.Comment {
		kept := s.accepted[:0]
		for _, a := range s.accepted {
			if !a.Overlaps(r) {
				kept = append(kept, a)
			}
		}
		s.accepted = append(kept, r)
		return
	}
	for _, a := range s.accepted {
		if a.Overlaps(r) {
			return
		}
	}
	s.accepted = append(s.accepted, r)
}

// resolve stable-sorts candidates by start and filters them into an ordered,
// non-overlapping set.
func resolve(candidates []types.Span) []types.Span {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Start < candidates[j].Start
	})
	var s rangeSet
	for _, c := range candidates {
		s.add(c)
	}
	sort.Slice(s.accepted, func(i, j int) bool {
		return s.accepted[i].Start < s.accepted[j].Start
	})
	return s.accepted
}

// fill walks [0, length) and returns ranges with Plain spans in the gaps.
func fill(ranges []types.Span, length int) []types.Span {
	if length == 0 {
		return nil
	}
	spans := make([]types.Span, 0, 2*len(ranges)+1)
	last := 0
	for _, r := range ranges {
		if r.Start > last {
			spans = append(spans, types.Span{Start: last, End: r.Start, Category: types.Plain})
		}
		spans = append(spans, r)
		last = r.End
	}
	if last < length {
		spans = append(spans, types.Span{Start: last, End: length, Category: types.Plain})
	}
	return spans
}
