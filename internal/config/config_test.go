package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *Config {
	return &Config{
		BucketName:      "secrets",
		BucketRegion:    "ams3",
		BucketEndpoint:  "https://ams3.example.com",
		BucketAccessKey: "key",
		BucketSecretKey: "secret",
		BucketObjectKey: "token.json",

		BoardBaseURL:  "https://board.example.com/1",
		BoardAPIKey:   "bk",
		BoardAPIToken: "bt",

		SourceSearchURL: "https://cue.example.com/search/",
		PublicationCode: "avisa",

		InProgressFeed: "https://cue.example.com/feeds/inprogress/",
		DeliveredFeed:  "https://cue.example.com/feeds/delivered/",
		ApprovedFeed:   "https://cue.example.com/feeds/approved/",
		PublishedFeed:  "https://cue.example.com/feeds/published/",

		IncludeApprovedFeed:       true,
		IncludePublishedFeed:      true,
		IncludeDeliveredFeedPrint: true,
		IncludeApprovedFeedPrint:  true,
		IncludePublishedFeedPrint: true,

		RunOnline:        true,
		OnlineBoard:      "board-online",
		OnlineIntakeList: "list-online",
		PrintBoard:       "board-print",
		PrintIntakeList:  "list-print",

		PublishedLabel: "lbl-published",
		SubmittedLabel: "lbl-submitted",
		ApprovedLabel:  "lbl-approved",
		ScheduledLabel: "lbl-scheduled",
		DraftLabel:     "lbl-draft",

		NewsLabel:  "lbl-news",
		VideoLabel: "lbl-video",

		PublishedLabelPrint: "lbl-published-p",
		SubmittedLabelPrint: "lbl-submitted-p",
		ApprovedLabelPrint:  "lbl-approved-p",
		DraftLabelPrint:     "lbl-draft-p",
		NewsLabelPrint:      "lbl-news-p",

		CorrelationFieldOnline:  "cf-corr-online",
		CorrelationFieldPrint:   "cf-corr-print",
		LastModifiedFieldOnline: "cf-lastmod",
		PublishedFieldOnline:    "cf-pub-online",
		PublishedFieldPrint:     "cf-pub-print",
		OpenFieldOnline:         "cf-open",

		OnlineReconcileInterval: 60 * time.Second,
		PrintReconcileInterval:  180 * time.Second,
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, baseConfig().Validate())
}

func TestValidateRejectsMissingBucket(t *testing.T) {
	cfg := baseConfig()
	cfg.BucketName = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsEnabledPipelineWithoutBoard(t *testing.T) {
	cfg := baseConfig()
	cfg.OnlineBoard = ""
	assert.Error(t, cfg.Validate())

	cfg = baseConfig()
	cfg.RunPrint = true
	cfg.CorrelationFieldPrint = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateIgnoresDisabledPipeline(t *testing.T) {
	cfg := baseConfig()
	cfg.RunPrint = false
	cfg.PrintBoard = ""
	cfg.CorrelationFieldPrint = ""
	assert.NoError(t, cfg.Validate())
}

func TestOnlinePipelineStateLabels(t *testing.T) {
	p := baseConfig().PipelineFor(Online)

	assert.Equal(t, "board-online", p.BoardID)
	assert.Equal(t, "cf-corr-online", p.CorrelationField)
	assert.Equal(t, "cf-lastmod", p.LastModifiedField)
	assert.Equal(t, "cf-open", p.OpenField)
	assert.False(t, p.LongName)

	// Draft variants collapse to the label of the state they lead to.
	assert.Equal(t, "lbl-submitted", p.StateLabels["draft-submitted"])
	assert.Equal(t, "lbl-approved", p.StateLabels["draft-approved"])
	assert.Equal(t, "lbl-published", p.StateLabels["draft-published"])
	assert.Equal(t, "lbl-scheduled", p.StateLabels["scheduled"])

	assert.Equal(t, "lbl-video", p.FormLabels["video"])
}

func TestPrintPipelineStateLabels(t *testing.T) {
	p := baseConfig().PipelineFor(Print)

	assert.Equal(t, "board-print", p.BoardID)
	assert.Equal(t, "cf-corr-print", p.CorrelationField)
	assert.True(t, p.LongName)
	assert.Empty(t, p.LastModifiedField)
	assert.Empty(t, p.OpenField)
	assert.Empty(t, p.PendingFeed)

	// Print has no scheduled-publication concept, so scheduled and
	// draft-submitted fold into published and approved respectively.
	assert.Equal(t, "lbl-published-p", p.StateLabels["scheduled"])
	assert.Equal(t, "lbl-approved-p", p.StateLabels["draft-submitted"])

	_, hasVideo := p.FormLabels["video"]
	assert.False(t, hasVideo)
}

func TestOnlineInboxFeedsHonorToggles(t *testing.T) {
	cfg := baseConfig()
	p := cfg.PipelineFor(Online)
	require.Len(t, p.InboxFeeds, 4)
	assert.Equal(t, cfg.DeliveredFeed, p.PendingFeed)

	cfg.IncludeApprovedFeed = false
	cfg.IncludePublishedFeed = false
	p = cfg.PipelineFor(Online)
	assert.Equal(t, []string{cfg.InProgressFeed, cfg.DeliveredFeed}, p.InboxFeeds)
}

func TestPrintInboxFeedsHonorToggles(t *testing.T) {
	cfg := baseConfig()
	p := cfg.PipelineFor(Print)
	assert.Equal(t, []string{cfg.DeliveredFeed, cfg.ApprovedFeed, cfg.PublishedFeed}, p.InboxFeeds)

	cfg.IncludeDeliveredFeedPrint = false
	p = cfg.PipelineFor(Print)
	assert.Equal(t, []string{cfg.ApprovedFeed, cfg.PublishedFeed}, p.InboxFeeds)
}

func TestPublicationString(t *testing.T) {
	assert.Equal(t, "online", Online.String())
	assert.Equal(t, "print", Print.String())
}

func TestGetEnvAsBool(t *testing.T) {
	cases := map[string]bool{
		"true": true, "1": true, "yes": true, "On": true,
		"false": false, "0": false, "no": false, "Off": false,
	}
	for raw, want := range cases {
		t.Setenv("CUEPLAN_TEST_BOOL", raw)
		assert.Equal(t, want, getEnvAsBool("CUEPLAN_TEST_BOOL", !want), "value %q", raw)
	}

	t.Setenv("CUEPLAN_TEST_BOOL", "garbage")
	assert.True(t, getEnvAsBool("CUEPLAN_TEST_BOOL", true))
	assert.False(t, getEnvAsBool("CUEPLAN_TEST_BOOL_UNSET", false))
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("CUEPLAN_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("CUEPLAN_TEST_DUR", time.Minute))

	t.Setenv("CUEPLAN_TEST_DUR", "not-a-duration")
	assert.Equal(t, time.Minute, getEnvAsDuration("CUEPLAN_TEST_DUR", time.Minute))

	assert.Equal(t, time.Minute, getEnvAsDuration("CUEPLAN_TEST_DUR_UNSET", time.Minute))
}
