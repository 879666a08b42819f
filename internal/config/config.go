package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Publication selects one of the two reconciliation pipelines.
type Publication int

const (
	Online Publication = iota
	Print
)

func (p Publication) String() string {
	if p == Print {
		return "print"
	}
	return "online"
}

// Pipeline is the static configuration bound to one publication: which board
// it reconciles, which feeds form its inbox, and how source values map to
// card labels and custom fields.
type Pipeline struct {
	Publication       Publication
	BoardID           string
	IntakeListID      string
	InboxFeeds        []string
	PendingFeed       string // delivered-queue feed, drives submitted-label escalation (online only)
	CorrelationField  string
	PublishedField    string
	LastModifiedField string // online only
	OpenField         string // online only
	StateLabels       map[string]string
	FormLabels        map[string]string
	SubmittedLabel    string
	ApprovedLabel     string
	PublishedLabel    string
	LongName          bool
	TrackChanges      bool
	ReconcileInterval time.Duration
}

// Config holds all configuration for the application
type Config struct {
	AppName    string
	AppVersion string
	Env        string

	RunOnline bool
	RunPrint  bool

	// Logging
	LogLevel string
	LogFile  string

	// Status server
	StatusPort string

	// Secret bucket (S3-compatible object storage holding the source token)
	BucketName      string `validate:"required"`
	BucketRegion    string `validate:"required"`
	BucketEndpoint  string `validate:"required,url"`
	BucketAccessKey string `validate:"required"`
	BucketSecretKey string `validate:"required"`
	BucketObjectKey string `validate:"required"`

	// Board service API
	BoardBaseURL    string `validate:"required,url"`
	BoardAPIKey     string `validate:"required"`
	BoardAPIToken   string `validate:"required"`
	HeartbeatCardID string

	// Source service
	SourceSearchURL string `validate:"required,url"`
	PublicationCode string `validate:"required"`

	// Source feeds
	InProgressFeed string
	DeliveredFeed  string `validate:"required,url"`
	ApprovedFeed   string
	PublishedFeed  string

	IncludeApprovedFeed       bool
	IncludePublishedFeed      bool
	IncludeDeliveredFeedPrint bool
	IncludeApprovedFeedPrint  bool
	IncludePublishedFeedPrint bool

	// Boards and intake lists
	OnlineBoard      string
	OnlineIntakeList string
	PrintBoard       string
	PrintIntakeList  string

	// Online state labels
	PublishedLabel string
	SubmittedLabel string
	ApprovedLabel  string
	ScheduledLabel string
	DraftLabel     string

	// Online form labels
	ReviewLabel  string
	NewsLabel    string
	OpinionLabel string
	FeatureLabel string
	GalleryLabel string
	VideoLabel   string

	// Print state labels
	PublishedLabelPrint string
	SubmittedLabelPrint string
	ApprovedLabelPrint  string
	DraftLabelPrint     string

	// Print form labels
	ReviewLabelPrint  string
	NewsLabelPrint    string
	OpinionLabelPrint string
	FeatureLabelPrint string
	GalleryLabelPrint string

	// Custom field ids
	CorrelationFieldOnline  string
	CorrelationFieldPrint   string
	LastModifiedFieldOnline string
	PublishedFieldOnline    string
	PublishedFieldPrint     string
	OpenFieldOnline         string

	// Feature toggles
	TrackChanges bool

	// Intervals
	NewCheckInterval        time.Duration
	OnlineReconcileInterval time.Duration
	PrintReconcileInterval  time.Duration
	HeartbeatInterval       time.Duration

	HTTPTimeout   time.Duration
	TokenCacheTTL time.Duration
}

// Load reads configuration from the environment (and .env if present) and
// validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: error loading .env file: %v\n", err)
	}

	cfg := &Config{
		AppName:    getEnv("APP_NAME", "cueplan"),
		AppVersion: getEnv("APP_VERSION", "dev"),
		Env:        getEnv("APP_ENV", "development"),

		RunOnline: getEnvAsBool("RUN_ONLINE", true),
		RunPrint:  getEnvAsBool("RUN_PRINT", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		StatusPort: getEnv("STATUS_PORT", "8080"),

		BucketName:      getEnv("SPACE_BUCKET", ""),
		BucketRegion:    getEnv("SPACE_REGION", ""),
		BucketEndpoint:  getEnv("SPACE_ENDPOINT", ""),
		BucketAccessKey: getEnv("SPACE_KEY", ""),
		BucketSecretKey: getEnv("SPACE_SECRET", ""),
		BucketObjectKey: getEnv("SPACE_PATH", ""),

		BoardBaseURL:    getEnv("BOARD_BASE_URL", ""),
		BoardAPIKey:     getEnv("BOARD_API_KEY", ""),
		BoardAPIToken:   getEnv("BOARD_API_TOKEN", ""),
		HeartbeatCardID: getEnv("HEARTBEAT_CARD_ID", ""),

		SourceSearchURL: getEnv("SOURCE_SEARCH_URL", ""),
		PublicationCode: getEnv("PUBLICATION_CODE", ""),

		InProgressFeed: getEnv("FEED_IN_PROGRESS", ""),
		DeliveredFeed:  getEnv("FEED_DELIVERED", ""),
		ApprovedFeed:   getEnv("FEED_APPROVED", ""),
		PublishedFeed:  getEnv("FEED_PUBLISHED", ""),

		IncludeApprovedFeed:       getEnvAsBool("INCLUDE_APPROVED_FEED", true),
		IncludePublishedFeed:      getEnvAsBool("INCLUDE_PUBLISHED_FEED", true),
		IncludeDeliveredFeedPrint: getEnvAsBool("INCLUDE_DELIVERED_FEED_PRINT", true),
		IncludeApprovedFeedPrint:  getEnvAsBool("INCLUDE_APPROVED_FEED_PRINT", true),
		IncludePublishedFeedPrint: getEnvAsBool("INCLUDE_PUBLISHED_FEED_PRINT", true),

		OnlineBoard:      getEnv("ONLINE_BOARD", ""),
		OnlineIntakeList: getEnv("ONLINE_INTAKE_LIST", ""),
		PrintBoard:       getEnv("PRINT_BOARD", ""),
		PrintIntakeList:  getEnv("PRINT_INTAKE_LIST", ""),

		PublishedLabel: getEnv("PUBLISHED_LABEL", ""),
		SubmittedLabel: getEnv("SUBMITTED_LABEL", ""),
		ApprovedLabel:  getEnv("APPROVED_LABEL", ""),
		ScheduledLabel: getEnv("SCHEDULED_LABEL", ""),
		DraftLabel:     getEnv("DRAFT_LABEL", ""),

		ReviewLabel:  getEnv("REVIEW_LABEL", ""),
		NewsLabel:    getEnv("NEWS_LABEL", ""),
		OpinionLabel: getEnv("OPINION_LABEL", ""),
		FeatureLabel: getEnv("FEATURE_LABEL", ""),
		GalleryLabel: getEnv("GALLERY_LABEL", ""),
		VideoLabel:   getEnv("VIDEO_LABEL", ""),

		PublishedLabelPrint: getEnv("PUBLISHED_LABEL_PRINT", ""),
		SubmittedLabelPrint: getEnv("SUBMITTED_LABEL_PRINT", ""),
		ApprovedLabelPrint:  getEnv("APPROVED_LABEL_PRINT", ""),
		DraftLabelPrint:     getEnv("DRAFT_LABEL_PRINT", ""),

		ReviewLabelPrint:  getEnv("REVIEW_LABEL_PRINT", ""),
		NewsLabelPrint:    getEnv("NEWS_LABEL_PRINT", ""),
		OpinionLabelPrint: getEnv("OPINION_LABEL_PRINT", ""),
		FeatureLabelPrint: getEnv("FEATURE_LABEL_PRINT", ""),
		GalleryLabelPrint: getEnv("GALLERY_LABEL_PRINT", ""),

		CorrelationFieldOnline:  getEnv("CORRELATION_FIELD_ONLINE", ""),
		CorrelationFieldPrint:   getEnv("CORRELATION_FIELD_PRINT", ""),
		LastModifiedFieldOnline: getEnv("LAST_MODIFIED_FIELD_ONLINE", ""),
		PublishedFieldOnline:    getEnv("PUBLISHED_FIELD_ONLINE", ""),
		PublishedFieldPrint:     getEnv("PUBLISHED_FIELD_PRINT", ""),
		OpenFieldOnline:         getEnv("OPEN_FIELD_ONLINE", ""),

		TrackChanges: getEnvAsBool("TRACK_CHANGES", false),

		NewCheckInterval:        getEnvAsDuration("NEW_CHECK_INTERVAL", 60*time.Second),
		OnlineReconcileInterval: getEnvAsDuration("ONLINE_RECONCILE_INTERVAL", 60*time.Second),
		PrintReconcileInterval:  getEnvAsDuration("PRINT_RECONCILE_INTERVAL", 180*time.Second),
		HeartbeatInterval:       getEnvAsDuration("HEARTBEAT_INTERVAL", 5*time.Minute),

		HTTPTimeout:   getEnvAsDuration("HTTP_TIMEOUT", 10*time.Second),
		TokenCacheTTL: getEnvAsDuration("TOKEN_CACHE_TTL", 5*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.RunOnline && (c.OnlineBoard == "" || c.OnlineIntakeList == "" || c.CorrelationFieldOnline == "") {
		return fmt.Errorf("online pipeline enabled but ONLINE_BOARD, ONLINE_INTAKE_LIST or CORRELATION_FIELD_ONLINE is missing")
	}
	if c.RunPrint && (c.PrintBoard == "" || c.PrintIntakeList == "" || c.CorrelationFieldPrint == "") {
		return fmt.Errorf("print pipeline enabled but PRINT_BOARD, PRINT_INTAKE_LIST or CORRELATION_FIELD_PRINT is missing")
	}
	return nil
}

// PipelineFor resolves the static pipeline configuration for a publication.
func (c *Config) PipelineFor(p Publication) Pipeline {
	switch p {
	case Print:
		return Pipeline{
			Publication:      Print,
			BoardID:          c.PrintBoard,
			IntakeListID:     c.PrintIntakeList,
			InboxFeeds:       c.printInboxFeeds(),
			CorrelationField: c.CorrelationFieldPrint,
			PublishedField:   c.PublishedFieldPrint,
			StateLabels: map[string]string{
				"published":       c.PublishedLabelPrint,
				"draft-published": c.PublishedLabelPrint,
				"draft-submitted": c.ApprovedLabelPrint,
				"draft-approved":  c.ApprovedLabelPrint,
				"submitted":       c.SubmittedLabelPrint,
				"approved":        c.ApprovedLabelPrint,
				"scheduled":       c.PublishedLabelPrint,
				"draft":           c.DraftLabelPrint,
			},
			FormLabels: map[string]string{
				"review":  c.ReviewLabelPrint,
				"story":   c.NewsLabelPrint,
				"opinion": c.OpinionLabelPrint,
				"feature": c.FeatureLabelPrint,
				"gallery": c.GalleryLabelPrint,
			},
			LongName:          true,
			ReconcileInterval: c.PrintReconcileInterval,
		}
	default:
		return Pipeline{
			Publication:       Online,
			BoardID:           c.OnlineBoard,
			IntakeListID:      c.OnlineIntakeList,
			InboxFeeds:        c.onlineInboxFeeds(),
			PendingFeed:       c.DeliveredFeed,
			CorrelationField:  c.CorrelationFieldOnline,
			PublishedField:    c.PublishedFieldOnline,
			LastModifiedField: c.LastModifiedFieldOnline,
			OpenField:         c.OpenFieldOnline,
			StateLabels: map[string]string{
				"published":       c.PublishedLabel,
				"draft-published": c.PublishedLabel,
				"draft-submitted": c.SubmittedLabel,
				"draft-approved":  c.ApprovedLabel,
				"submitted":       c.SubmittedLabel,
				"approved":        c.ApprovedLabel,
				"scheduled":       c.ScheduledLabel,
				"draft":           c.DraftLabel,
			},
			FormLabels: map[string]string{
				"review":  c.ReviewLabel,
				"story":   c.NewsLabel,
				"opinion": c.OpinionLabel,
				"feature": c.FeatureLabel,
				"gallery": c.GalleryLabel,
				"video":   c.VideoLabel,
			},
			SubmittedLabel:    c.SubmittedLabel,
			ApprovedLabel:     c.ApprovedLabel,
			PublishedLabel:    c.PublishedLabel,
			TrackChanges:      c.TrackChanges,
			ReconcileInterval: c.OnlineReconcileInterval,
		}
	}
}

func (c *Config) onlineInboxFeeds() []string {
	feeds := []string{}
	if c.InProgressFeed != "" {
		feeds = append(feeds, c.InProgressFeed)
	}
	if c.DeliveredFeed != "" {
		feeds = append(feeds, c.DeliveredFeed)
	}
	if c.IncludeApprovedFeed && c.ApprovedFeed != "" {
		feeds = append(feeds, c.ApprovedFeed)
	}
	if c.IncludePublishedFeed && c.PublishedFeed != "" {
		feeds = append(feeds, c.PublishedFeed)
	}
	return feeds
}

func (c *Config) printInboxFeeds() []string {
	feeds := []string{}
	if c.IncludeDeliveredFeedPrint && c.DeliveredFeed != "" {
		feeds = append(feeds, c.DeliveredFeed)
	}
	if c.IncludeApprovedFeedPrint && c.ApprovedFeed != "" {
		feeds = append(feeds, c.ApprovedFeed)
	}
	if c.IncludePublishedFeedPrint && c.PublishedFeed != "" {
		feeds = append(feeds, c.PublishedFeed)
	}
	return feeds
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	switch valueStr {
	case "yes", "on", "Yes", "On":
		return true
	case "no", "off", "No", "Off":
		return false
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultVal
	}
	return value
}
