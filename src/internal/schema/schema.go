package schema

import (
	"errors"
	"strings"

	"isfdbmeta/src/internal/dates"
)

// Identifier kinds as the host stores them on a catalog entry.
const (
	IDPublication = "isfdb"
	IDTitle       = "isfdb-title"
	IDCatalog     = "isfdb-catalog"
	IDISBN        = "isbn"
)

// Metadata is one resolved bibliographic record in the host's normalized shape.
type Metadata struct {
	Title       string            `yaml:"title" json:"title"`
	Authors     []string          `yaml:"authors" json:"authors"`
	Identifiers map[string]string `yaml:"identifiers" json:"identifiers"`
	Publisher   string            `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	PubDate     dates.PartialDate `yaml:"pubdate,omitempty" json:"pubdate,omitempty"`
	Series      *Series           `yaml:"series,omitempty" json:"series,omitempty"`
	Language    string            `yaml:"language,omitempty" json:"language,omitempty"`
	Tags        []string          `yaml:"tags,omitempty" json:"tags,omitempty"`
	Comments    string            `yaml:"comments,omitempty" json:"comments,omitempty"`
	CoverURL    string            `yaml:"cover_url,omitempty" json:"cover_url,omitempty"`
	SourceURL   string            `yaml:"source_url,omitempty" json:"source_url,omitempty"`
	// Relevance orders results for the host: 0 is an exact match, larger is looser.
	Relevance int `yaml:"relevance" json:"relevance"`
}

// Series is series membership; Index is empty when the remote gives no number.
type Series struct {
	Name  string `yaml:"name" json:"name"`
	Index string `yaml:"index,omitempty" json:"index,omitempty"`
}

// Validate rejects records the host cannot use.
func (m *Metadata) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return errors.New("title is required")
	}
	if len(m.Authors) == 0 {
		return errors.New("at least one author is required")
	}
	for _, a := range m.Authors {
		if strings.TrimSpace(a) == "" {
			return errors.New("authors must not be blank")
		}
	}
	if m.Identifiers[IDPublication] == "" && m.Identifiers[IDTitle] == "" {
		return errors.New("an isfdb or isfdb-title identifier is required")
	}
	return nil
}
