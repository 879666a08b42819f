package source

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// TokenProvider supplies the bearer credential for the list feeds.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

var (
	idPattern        = regexp.MustCompile(`<id>urn:[^:]+:(\d{7})</id>`)
	authorPattern    = regexp.MustCompile(`<author>\s*<name>(.*?)</name>`)
	templatePattern  = regexp.MustCompile(`<vdf:payload[^>]+model="[^"]+/(\w+)"`)
	summaryPattern   = regexp.MustCompile(`<summary type="text">(.*?)</summary>`)
	statePattern     = regexp.MustCompile(`<vaext:state name="(.*?)"/>`)
	publishPattern   = regexp.MustCompile(`<published>(.*?)</published>`)
	paragraphPattern = regexp.MustCompile(`(?s)<p>(.*?)</p>`)
	imagePattern     = regexp.MustCompile(`<img src=`)
)

// Client is the typed facade over the editorial source: list feeds for id
// discovery and per-article document fetches.
type Client struct {
	http      *resty.Client
	tokens    TokenProvider
	searchURL string
	pubCode   string
	now       func() time.Time
	log       zerolog.Logger
}

func NewClient(httpClient *resty.Client, tokens TokenProvider, searchURL, pubCode string, log zerolog.Logger) *Client {
	return &Client{
		http:      httpClient,
		tokens:    tokens,
		searchURL: searchURL,
		pubCode:   pubCode,
		now:       time.Now,
		log:       log,
	}
}

// ListIDs fetches one list feed over the trailing date window and returns
// every id occurrence it matches. Duplicates are returned as-is; the caller
// decides what repeated occurrences mean.
func (c *Client) ListIDs(ctx context.Context, feed string) ([]string, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve source token: %w", err)
	}

	feedURL := FeedURL(feed, c.now())
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", tok).
		Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from feed %s", resp.StatusCode(), feedURL)
	}

	var ids []string
	for _, m := range idPattern.FindAllStringSubmatch(resp.String(), -1) {
		ids = append(ids, m[1])
	}
	c.log.Debug().Str("feed", feed).Int("matches", len(ids)).Msg("feed scanned")
	return ids, nil
}

// Fetch retrieves one article document by id and extracts its fields.
func (c *Client) Fetch(ctx context.Context, id string) (*Article, error) {
	url := c.searchURL + c.pubCode + id
	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch article %s: %w", id, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching article %s", resp.StatusCode(), id)
	}

	return parseArticle(id, resp.String()), nil
}

func parseArticle(id, doc string) *Article {
	charCount := 0
	for _, m := range paragraphPattern.FindAllStringSubmatch(doc, -1) {
		charCount += len(m[1])
	}

	return &Article{
		ID:             id,
		Title:          fieldValue(doc, "title"),
		Author:         firstMatch(authorPattern, doc),
		TemplateTag:    firstMatch(templatePattern, doc),
		LastModified:   strings.Replace(fieldValue(doc, "lastModifiedDate"), "+0000", "Z", 1),
		NoFreeFlow:     fieldValue(doc, "noFreeFlow") == "true",
		IsPremium:      fieldValue(doc, "isPremium") == "true",
		Summary:        firstMatch(summaryPattern, doc),
		WorkflowStatus: firstMatch(statePattern, doc),
		PublishTime:    firstMatch(publishPattern, doc),
		CharacterCount: charCount,
		ImageCount:     len(imagePattern.FindAllStringIndex(doc, -1)),
	}
}

// fieldValue extracts a vdf field value by name.
func fieldValue(doc, name string) string {
	p := regexp.MustCompile(
		`<vdf:field name="` + regexp.QuoteMeta(name) + `"><vdf:value>(.*?)</vdf:value></vdf:field>`,
	)
	return firstMatch(p, doc)
}

func firstMatch(p *regexp.Regexp, doc string) string {
	if m := p.FindStringSubmatch(doc); m != nil {
		return m[1]
	}
	return ""
}
