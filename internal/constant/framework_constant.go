package constant

import "ceo-diagnostic-be/pkg/wizard"

// FrameworkCategories is the fixed catalog of scored dimensions, in
// diagram order. Profits is a Venn circle on the diagram, not a scored
// segment, so the catalog holds nine entries and the maximum total
// score is 90. Any "out of 90" display copy must track this list.
var FrameworkCategories = []wizard.Category{
	{ID: "avatar", Name: "Avatar", Description: "Your ideal client profile", Ordinal: 0},
	{ID: "promise", Name: "Promise", Description: "Your core transformation promise", Ordinal: 1},
	{ID: "stages", Name: "Stages", Description: "Your client journey stages", Ordinal: 2},
	{ID: "story-selling", Name: "Story Selling", Description: "Your narrative sales approach", Ordinal: 3},
	{ID: "cta", Name: "CTA", Description: "Your calls to action", Ordinal: 4},
	{ID: "pitches", Name: "Pitches", Description: "Your pitch presentations", Ordinal: 5},
	{ID: "follow-ups", Name: "Follow Ups", Description: "Your follow-up systems", Ordinal: 6},
	{ID: "pipeline", Name: "Pipeline", Description: "Your sales pipeline", Ordinal: 7},
	{ID: "offer", Name: "Offer", Description: "Your core offer structure", Ordinal: 8},
}
