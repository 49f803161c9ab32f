package engine

import (
	"testing"

	"admitpath/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestClassifySegment_AllBracketCombinations(t *testing.T) {
	cases := []struct {
		income, budget model.Bracket
		want           model.Segment
	}{
		{model.BracketLow, model.BracketLow, model.SegmentLow},
		{model.BracketLow, model.BracketMedium, model.SegmentLow},
		{model.BracketLow, model.BracketHigh, model.SegmentLow},
		{model.BracketMedium, model.BracketLow, model.SegmentLow},
		{model.BracketHigh, model.BracketLow, model.SegmentLow},
		{model.BracketHigh, model.BracketHigh, model.SegmentHigh},
		{model.BracketMedium, model.BracketMedium, model.SegmentMedium},
		{model.BracketMedium, model.BracketHigh, model.SegmentMedium},
		{model.BracketHigh, model.BracketMedium, model.SegmentMedium},
	}

	for _, tc := range cases {
		got := ClassifySegment(tc.income, tc.budget)
		assert.Equal(t, tc.want, got, "income=%s budget=%s", tc.income, tc.budget)
	}
}

func TestClassifySegment_LowBracketOutranksHigh(t *testing.T) {
	// Either bracket low wins regardless of the other one.
	assert.Equal(t, model.SegmentLow, ClassifySegment(model.BracketLow, model.BracketHigh))
	assert.Equal(t, model.SegmentLow, ClassifySegment(model.BracketHigh, model.BracketLow))
}
