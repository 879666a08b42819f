package source

import "fmt"

// Article is a snapshot of one editorial item at fetch time. It is built
// fresh on every fetch and never persisted.
type Article struct {
	ID             string
	Title          string
	Author         string
	TemplateTag    string
	LastModified   string
	NoFreeFlow     bool
	IsPremium      bool
	Summary        string
	WorkflowStatus string
	PublishTime    string
	CharacterCount int
	ImageCount     int
}

// DisplayName is the card name used by the online pipeline.
func (a *Article) DisplayName() string {
	return fmt.Sprintf("%s (%s)", a.Title, a.Author)
}

// DisplayNameLong appends the character and image counts; the print desk
// plans page space from these.
func (a *Article) DisplayNameLong() string {
	return fmt.Sprintf("%s [TEGN: %d IMG: %d]", a.DisplayName(), a.CharacterCount, a.ImageCount)
}

// Name returns the display name in the requested style.
func (a *Article) Name(long bool) string {
	if long {
		return a.DisplayNameLong()
	}
	return a.DisplayName()
}
