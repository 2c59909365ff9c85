package sqlite

import (
	"context"
	"strings"
	"unicode"

	"github.com/fwojciec/docsearch"
)

// Compile-time interface verification.
var _ docsearch.SearchService = (*SearchService)(nil)

// Snippet markers wrapped around matched terms.
const (
	SnippetStart = "["
	SnippetEnd   = "]"
)

// snippetTokens is the approximate snippet length in tokens.
const snippetTokens = 16

// SearchService implements docsearch.SearchService using SQLite FTS5.
type SearchService struct {
	db *DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	return &SearchService{db: db}
}

// Search returns documents whose title or content match query, ranked by
// bm25 with title matches weighted above content matches.
func (s *SearchService) Search(ctx context.Context, query string, opts docsearch.SearchOptions) ([]docsearch.SearchResult, error) {
	match, err := BuildMatchQuery(query)
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = docsearch.DefaultSearchLimit
	}

	var q strings.Builder
	args := []any{SnippetStart, SnippetEnd, snippetTokens, match}

	q.WriteString(`
		SELECT d.id, d.title, d.file_name, d.file_key, d.file_url, d.content_type, d.size,
			d.content, d.content_hash, d.topic, d.project, d.team, d.uploaded_at,
			snippet(documents_fts, 2, ?, ?, '...', ?),
			bm25(documents_fts, 0.0, 5.0, 1.0) AS score
		FROM documents_fts
		JOIN documents d ON d.id = documents_fts.doc_id
		WHERE documents_fts MATCH ?`)
	appendTaxonomyFilter(&q, &args, "d.", opts.Topic, opts.Project, opts.Team)
	q.WriteString(" ORDER BY score, d.uploaded_at DESC")
	appendPagination(&q, &args, limit, 0)

	rows, err := s.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []docsearch.SearchResult
	for rows.Next() {
		var r docsearch.SearchResult
		doc, err := scanDocument(rows, &r.Snippet, &r.Rank)
		if err != nil {
			return nil, err
		}
		r.Document = doc
		results = append(results, r)
	}
	return results, rows.Err()
}

// BuildMatchQuery translates a web-style search query into an FTS5 MATCH
// expression.
//
// Bare words must all match. "Quoted phrases" match as phrases, a trailing *
// matches a prefix, "or" between two terms matches either, and a leading -
// excludes a term. Every term is emitted as a quoted FTS5 string, so query
// text can never inject FTS5 syntax. A query with nothing to match, or only
// exclusions, returns EINVALID.
func BuildMatchQuery(query string) (string, error) {
	var (
		groups   [][]string // OR-groups, AND-ed together
		excluded []string
		pendOr   bool
	)

	for _, tok := range tokenizeQuery(query) {
		if !tok.quoted && !tok.negated && strings.EqualFold(tok.text, "or") {
			pendOr = len(groups) > 0
			continue
		}
		term, ok := ftsTerm(tok)
		if !ok {
			continue
		}
		if tok.negated {
			excluded = append(excluded, term)
			continue
		}
		if pendOr {
			last := len(groups) - 1
			groups[last] = append(groups[last], term)
		} else {
			groups = append(groups, []string{term})
		}
		pendOr = false
	}

	if len(groups) == 0 {
		if len(excluded) > 0 {
			return "", docsearch.Errorf(docsearch.EINVALID, "search query needs at least one term that is not excluded")
		}
		return "", docsearch.Errorf(docsearch.EINVALID, "search query required")
	}

	parts := make([]string, len(groups))
	for i, g := range groups {
		if len(g) == 1 {
			parts[i] = g[0]
		} else {
			parts[i] = "(" + strings.Join(g, " OR ") + ")"
		}
	}
	expr := strings.Join(parts, " AND ")
	if len(excluded) == 0 {
		return expr, nil
	}
	if len(parts) > 1 {
		expr = "(" + expr + ")"
	}
	return expr + " NOT " + strings.Join(excluded, " NOT "), nil
}

type queryToken struct {
	text    string
	quoted  bool
	negated bool
	prefix  bool
}

// tokenizeQuery splits a query into words and quoted phrases. An unclosed
// quote runs to the end of the query.
func tokenizeQuery(query string) []queryToken {
	var tokens []queryToken
	rs := []rune(query)
	for i := 0; i < len(rs); {
		if unicode.IsSpace(rs[i]) {
			i++
			continue
		}

		var tok queryToken
		if rs[i] == '-' && i+1 < len(rs) && !unicode.IsSpace(rs[i+1]) {
			tok.negated = true
			i++
		}

		if rs[i] == '"' {
			i++
			start := i
			for i < len(rs) && rs[i] != '"' {
				i++
			}
			tok.text = string(rs[start:i])
			tok.quoted = true
			if i < len(rs) {
				i++
			}
		} else {
			start := i
			for i < len(rs) && !unicode.IsSpace(rs[i]) && rs[i] != '"' {
				i++
			}
			tok.text = string(rs[start:i])
		}

		if i < len(rs) && rs[i] == '*' {
			tok.prefix = true
			i++
		} else if !tok.quoted && strings.HasSuffix(tok.text, "*") {
			tok.text = strings.TrimRight(tok.text, "*")
			tok.prefix = true
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// ftsTerm renders a token as an FTS5 string. Tokens without letters or
// digits produce no term because the tokenizer would discard them.
func ftsTerm(tok queryToken) (string, bool) {
	if !strings.ContainsFunc(tok.text, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) {
		return "", false
	}
	term := `"` + strings.ReplaceAll(tok.text, `"`, `""`) + `"`
	if tok.prefix {
		term += "*"
	}
	return term, true
}
