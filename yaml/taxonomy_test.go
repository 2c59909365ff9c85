package yaml_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const financeTaxonomy = `
topics:
  - Invoices
  - Contracts
  - Other
projects: [Alpha, None]
teams: [Finance, Legal]
topicFallback: Other
projectFallback: None
teamFallback: Finance
`

func TestLoadTaxonomy(t *testing.T) {
	t.Parallel()

	t.Run("loads lists in file order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "taxonomy.yaml")
		require.NoError(t, os.WriteFile(path, []byte(financeTaxonomy), 0644))

		tax, err := yaml.LoadTaxonomy(path)

		require.NoError(t, err)
		assert.Equal(t, docsearch.Taxonomy{
			Topics:          []string{"Invoices", "Contracts", "Other"},
			Projects:        []string{"Alpha", "None"},
			Teams:           []string{"Finance", "Legal"},
			TopicFallback:   "Other",
			ProjectFallback: "None",
			TeamFallback:    "Finance",
		}, tax)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadTaxonomy(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	})
}

func TestParseTaxonomy(t *testing.T) {
	t.Parallel()

	invalid := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not yaml", "topics: [unclosed"},
		{"unknown key", financeTaxonomy + "colour: blue\n"},
		{"missing teams", "topics: [A]\nprojects: [B]\ntopicFallback: A\nprojectFallback: B\nteamFallback: C\n"},
		{"missing fallback", "topics: [A]\nprojects: [B]\nteams: [C]\n"},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := yaml.ParseTaxonomy([]byte(tt.data))

			require.Error(t, err)
			assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
		})
	}
}

func TestWriteTaxonomy(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, yaml.WriteTaxonomy(&buf, docsearch.DefaultTaxonomy()))

	assert.Contains(t, buf.String(), "topicFallback: Uncategorized")
	assert.Contains(t, buf.String(), "- Budget & Finance")

	tax, err := yaml.ParseTaxonomy(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, docsearch.DefaultTaxonomy(), tax)
}
