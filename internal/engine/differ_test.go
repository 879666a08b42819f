package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediehuset/cueplan/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		RunOnline: true,
		RunPrint:  true,

		InProgressFeed:            "feed-progress",
		DeliveredFeed:             "feed-delivered",
		ApprovedFeed:              "feed-approved",
		IncludeApprovedFeed:       false,
		IncludePublishedFeed:      false,
		IncludeDeliveredFeedPrint: true,

		OnlineBoard:      "board-online",
		OnlineIntakeList: "list-intake-online",
		PrintBoard:       "board-print",
		PrintIntakeList:  "list-intake-print",

		PublishedLabel: "lbl-published",
		SubmittedLabel: "lbl-submitted",
		ApprovedLabel:  "lbl-approved",
		ScheduledLabel: "lbl-scheduled",
		DraftLabel:     "lbl-draft",

		ReviewLabel:  "lbl-review",
		NewsLabel:    "lbl-news",
		OpinionLabel: "lbl-opinion",
		FeatureLabel: "lbl-feature",
		GalleryLabel: "lbl-gallery",
		VideoLabel:   "lbl-video",

		PublishedLabelPrint: "lbl-published-p",
		SubmittedLabelPrint: "lbl-submitted-p",
		ApprovedLabelPrint:  "lbl-approved-p",
		DraftLabelPrint:     "lbl-draft-p",
		NewsLabelPrint:      "lbl-news-p",

		CorrelationFieldOnline:  "cf-corr-online",
		CorrelationFieldPrint:   "cf-corr-print",
		LastModifiedFieldOnline: "cf-lastmod",
		PublishedFieldOnline:    "cf-published",
		PublishedFieldPrint:     "cf-published-p",
		OpenFieldOnline:         "cf-open",
	}
}

func newTestEngine(src *fakeSource, brd *fakeBoard) *Engine {
	return New(src, brd, testConfig(), zerolog.Nop())
}

func TestFindNewExcludesDuplicateIDs(t *testing.T) {
	src := &fakeSource{feeds: map[string][]string{
		"feed-progress":  {"1234567"},
		"feed-delivered": {"1234567", "7654321"},
	}}
	brd := &fakeBoard{}

	got := newTestEngine(src, brd).FindNew(context.Background(), config.Online)

	assert.Equal(t, []string{"7654321"}, got)
}

func TestFindNewExcludesDuplicatesWithinOneFeed(t *testing.T) {
	src := &fakeSource{feeds: map[string][]string{
		"feed-progress":  {"1111111", "1111111", "2222222"},
		"feed-delivered": nil,
	}}
	brd := &fakeBoard{}

	got := newTestEngine(src, brd).FindNew(context.Background(), config.Online)

	assert.Equal(t, []string{"2222222"}, got)
}

func TestFindNewIsSetDifferenceAgainstBoard(t *testing.T) {
	src := &fakeSource{feeds: map[string][]string{
		"feed-progress":  {"1000001", "1000002"},
		"feed-delivered": {"1000003"},
	}}
	brd := &fakeBoard{corrIDs: []string{"1000002", "9999999"}}

	got := newTestEngine(src, brd).FindNew(context.Background(), config.Online)

	assert.ElementsMatch(t, []string{"1000001", "1000003"}, got)
	for _, id := range got {
		assert.NotContains(t, brd.corrIDs, id)
	}
}

func TestFindNewReturnsEmptyOnFeedFailure(t *testing.T) {
	src := &fakeSource{
		feeds:   map[string][]string{"feed-delivered": {"1000001"}},
		feedErr: map[string]error{"feed-progress": errFake},
	}
	brd := &fakeBoard{}

	got := newTestEngine(src, brd).FindNew(context.Background(), config.Online)

	assert.Empty(t, got)
}

func TestFindNewReturnsEmptyOnBoardFailure(t *testing.T) {
	src := &fakeSource{feeds: map[string][]string{
		"feed-progress":  {"1000001"},
		"feed-delivered": nil,
	}}
	brd := &fakeBoard{corrErr: errFake}

	got := newTestEngine(src, brd).FindNew(context.Background(), config.Online)

	assert.Empty(t, got)
}

func TestFindNewPrintUsesPrintFeedSet(t *testing.T) {
	src := &fakeSource{feeds: map[string][]string{
		"feed-delivered": {"3000001"},
		"feed-approved":  {"3000002"},
		"feed-progress":  {"3000003"}, // not in the print inbox set
	}}
	brd := &fakeBoard{}

	cfg := testConfig()
	cfg.IncludeApprovedFeedPrint = true
	eng := New(src, brd, cfg, zerolog.Nop())

	got := eng.FindNew(context.Background(), config.Print)

	require.ElementsMatch(t, []string{"3000001", "3000002"}, got)
}
