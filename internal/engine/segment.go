package engine

import "admitpath/internal/model"

// ClassifySegment maps coarse income and budget brackets to an affordability
// segment. First matching rule wins:
//  1. either bracket low      -> low
//  2. both brackets high      -> high
//  3. anything else           -> medium
func ClassifySegment(income, budget model.Bracket) model.Segment {
	if income == model.BracketLow || budget == model.BracketLow {
		return model.SegmentLow
	}
	if income == model.BracketHigh && budget == model.BracketHigh {
		return model.SegmentHigh
	}
	return model.SegmentMedium
}
