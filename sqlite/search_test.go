package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMatchQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single word", "revenue", `"revenue"`},
		{"words are AND-ed", "brand colors", `"brand" AND "colors"`},
		{"quoted phrase", `"brand book" update`, `"brand book" AND "update"`},
		{"or joins neighbours", "logo or typography", `("logo" OR "typography")`},
		{"or binds tighter than and", "brand logo OR typography", `"brand" AND ("logo" OR "typography")`},
		{"exclusion", "campaign -draft", `"campaign" NOT "draft"`},
		{"exclusion after several terms", "client campaign -draft -old", `("client" AND "campaign") NOT "draft" NOT "old"`},
		{"excluded phrase", `campaign -"first draft"`, `"campaign" NOT "first draft"`},
		{"prefix", "budg*", `"budg"*`},
		{"quoted prefix", `"brand bo"*`, `"brand bo"*`},
		{"fts syntax is quoted", "NEAR(a b) AND title:x", `"NEAR(a" AND "b)" AND "AND" AND "title:x"`},
		{"unclosed quote runs to end", `"brand book`, `"brand book"`},
		{"leading and trailing or are ignored", "or logo or", `"logo"`},
		{"punctuation only terms are dropped", "logo & - ...", `"logo"`},
		{"hyphenated word is kept", "e-mail", `"e-mail"`},
		{"unicode", "Zürich Łódź", `"Zürich" AND "Łódź"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sqlite.BuildMatchQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	invalid := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"only exclusions", "-draft -old"},
		{"only operators", "or OR"},
		{"only punctuation", `"" & *`},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := sqlite.BuildMatchQuery(tt.query)
			require.Error(t, err)
			assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
		})
	}
}

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*sqlite.SearchService, map[string]*docsearch.Document) {
		t.Helper()
		db := setupTestDB(t)
		docs := sqlite.NewDocumentService(db)
		created := map[string]*docsearch.Document{
			"review": createTestDocument(t, docs, "Q4 review",
				"Quarterly revenue grew twelve percent. The board approved the budget for next year.", reviewCat),
			"brand": createTestDocument(t, docs, "Brand book",
				"Use the primary logo on light backgrounds. Typography follows the brand book.", brandingCat),
			"budget": createTestDocument(t, docs, "Budget draft",
				"Draft budget for the website relaunch. Numbers are preliminary.",
				docsearch.Categorization{Topic: "Budget & Finance", Project: "Website Relaunch", Team: "Operations"}),
		}
		return sqlite.NewSearchService(db), created
	}

	t.Run("finds documents by content", func(t *testing.T) {
		t.Parallel()

		svc, docs := setup(t)

		results, err := svc.Search(context.Background(), "logo", docsearch.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, docs["brand"].ID, results[0].Document.ID)
		assert.Equal(t, "Brand Book Update", results[0].Document.Project)
		assert.Contains(t, results[0].Snippet, sqlite.SnippetStart+"logo"+sqlite.SnippetEnd)
	})

	t.Run("ranks better matches first", func(t *testing.T) {
		t.Parallel()

		svc, docs := setup(t)

		results, err := svc.Search(context.Background(), "budget", docsearch.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, docs["budget"].ID, results[0].Document.ID)
		assert.Equal(t, docs["review"].ID, results[1].Document.ID)
		assert.LessOrEqual(t, results[0].Rank, results[1].Rank)
	})

	t.Run("applies exclusions", func(t *testing.T) {
		t.Parallel()

		svc, docs := setup(t)

		results, err := svc.Search(context.Background(), "budget -draft", docsearch.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, docs["review"].ID, results[0].Document.ID)
	})

	t.Run("matches phrases and alternatives", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)
		ctx := context.Background()

		results, err := svc.Search(ctx, `"brand book"`, docsearch.SearchOptions{})
		require.NoError(t, err)
		assert.Len(t, results, 1)

		results, err = svc.Search(ctx, "typography or revenue", docsearch.SearchOptions{})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("matches prefixes and ignores case", func(t *testing.T) {
		t.Parallel()

		svc, docs := setup(t)

		results, err := svc.Search(context.Background(), "TYPOGRAPH*", docsearch.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, docs["brand"].ID, results[0].Document.ID)
	})

	t.Run("filters by taxonomy", func(t *testing.T) {
		t.Parallel()

		svc, docs := setup(t)

		team := "Operations"
		results, err := svc.Search(context.Background(), "budget", docsearch.SearchOptions{Team: &team})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, docs["budget"].ID, results[0].Document.ID)
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)

		results, err := svc.Search(context.Background(), "the", docsearch.SearchOptions{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("returns no results without error when nothing matches", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)

		results, err := svc.Search(context.Background(), "nonexistentterm", docsearch.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("returns EINVALID for empty query", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)

		_, err := svc.Search(context.Background(), "", docsearch.SearchOptions{})
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("treats FTS syntax in queries as text", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)

		_, err := svc.Search(context.Background(), `title:logo NEAR( "unbalanced`, docsearch.SearchOptions{})
		require.NoError(t, err)
	})
}
