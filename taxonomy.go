package docsearch

import (
	"context"
	"strings"
)

// Fallback values used when no usable categorization is available.
const (
	DefaultTopicFallback   = "Uncategorized"
	DefaultProjectFallback = "N/A"
	DefaultTeamFallback    = "Operations"
)

// DefaultCategorization is returned whenever inference cannot produce a
// usable answer for the default taxonomy.
var DefaultCategorization = Categorization{
	Topic:   DefaultTopicFallback,
	Project: DefaultProjectFallback,
	Team:    DefaultTeamFallback,
}

// Categorization holds the taxonomy fields assigned to a document.
// It is a value type: copies never share state.
type Categorization struct {
	Topic   string `json:"topic" yaml:"topic"`
	Project string `json:"project" yaml:"project"`
	Team    string `json:"team" yaml:"team"`
}

// Categorizer classifies document text into the taxonomy.
type Categorizer interface {
	// Categorize returns the categorization for content. It never fails:
	// when no usable answer can be obtained the taxonomy default is returned.
	Categorize(ctx context.Context, content string) Categorization
}

// TaxonomyPolicy decides what happens to model output that is not a member
// of the configured lists.
type TaxonomyPolicy string

// TaxonomyPolicy constants.
const (
	// PolicyPermissive keeps off-taxonomy values as returned by the model.
	PolicyPermissive TaxonomyPolicy = "permissive"

	// PolicyStrict replaces off-taxonomy values with the field fallback.
	PolicyStrict TaxonomyPolicy = "strict"
)

// Taxonomy is the closed set of values a document can be classified into.
// Lists are ordered; prompts present them in this order.
type Taxonomy struct {
	Topics   []string `yaml:"topics"`
	Projects []string `yaml:"projects"`
	Teams    []string `yaml:"teams"`

	TopicFallback   string `yaml:"topicFallback"`
	ProjectFallback string `yaml:"projectFallback"`
	TeamFallback    string `yaml:"teamFallback"`
}

// DefaultTaxonomy returns the built-in marketing taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Topics: []string{
			"Quarterly Review",
			"New Product Launch",
			"Client Case Study",
			"Branding Guidelines",
			"Internal Operations",
			"Budget & Finance",
			"Uncategorized",
		},
		Projects: []string{
			"Q4 Strategy 2024",
			"Website Relaunch",
			"Client XYZ Campaign",
			"Internal Audit",
			"Brand Book Update",
			"N/A",
		},
		Teams: []string{
			"Creative",
			"Sales",
			"Data & Analytics",
			"Product Marketing",
			"Executive",
			"Operations",
			"External",
		},
		TopicFallback:   DefaultTopicFallback,
		ProjectFallback: DefaultProjectFallback,
		TeamFallback:    DefaultTeamFallback,
	}
}

// Validate returns an error if the taxonomy cannot be used for classification.
func (t Taxonomy) Validate() error {
	switch {
	case len(t.Topics) == 0:
		return Errorf(EINVALID, "taxonomy topics required")
	case len(t.Projects) == 0:
		return Errorf(EINVALID, "taxonomy projects required")
	case len(t.Teams) == 0:
		return Errorf(EINVALID, "taxonomy teams required")
	case t.TopicFallback == "":
		return Errorf(EINVALID, "taxonomy topic fallback required")
	case t.ProjectFallback == "":
		return Errorf(EINVALID, "taxonomy project fallback required")
	case t.TeamFallback == "":
		return Errorf(EINVALID, "taxonomy team fallback required")
	}
	for _, list := range [][]string{t.Topics, t.Projects, t.Teams} {
		for _, v := range list {
			if strings.TrimSpace(v) == "" {
				return Errorf(EINVALID, "taxonomy values must not be blank")
			}
		}
	}
	return nil
}

// Default returns the fallback categorization for this taxonomy.
func (t Taxonomy) Default() Categorization {
	return Categorization{
		Topic:   t.TopicFallback,
		Project: t.ProjectFallback,
		Team:    t.TeamFallback,
	}
}

// Fill replaces empty or blank fields of c with the taxonomy fallbacks.
func (t Taxonomy) Fill(c Categorization) Categorization {
	if strings.TrimSpace(c.Topic) == "" {
		c.Topic = t.TopicFallback
	}
	if strings.TrimSpace(c.Project) == "" {
		c.Project = t.ProjectFallback
	}
	if strings.TrimSpace(c.Team) == "" {
		c.Team = t.TeamFallback
	}
	return c
}

// Conform maps every field of c that is not a member of its list to the
// field fallback. Matching ignores case and surrounding whitespace; matched
// values are returned in their canonical spelling.
func (t Taxonomy) Conform(c Categorization) Categorization {
	return Categorization{
		Topic:   match(t.Topics, c.Topic, t.TopicFallback),
		Project: match(t.Projects, c.Project, t.ProjectFallback),
		Team:    match(t.Teams, c.Team, t.TeamFallback),
	}
}

// Apply enforces policy on c. Empty fields are always filled.
func (t Taxonomy) Apply(c Categorization, policy TaxonomyPolicy) Categorization {
	if policy == PolicyStrict {
		return t.Conform(c)
	}
	return t.Fill(c)
}

// Contains reports whether every field of c is a member of its list.
func (t Taxonomy) Contains(c Categorization) bool {
	return t.Conform(c) == c
}

func match(values []string, v, fallback string) string {
	v = strings.TrimSpace(v)
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return candidate
		}
	}
	return fallback
}
