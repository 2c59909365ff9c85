package etree_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx returns a minimal .docx package whose document part is body
// wrapped in w:document/w:body.
func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	require.NoError(t, err)

	w, err = zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDocxExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("returns one line per paragraph", func(t *testing.T) {
		t.Parallel()

		data := buildDocx(t, `
<w:p><w:r><w:t>Q4 Strategy 2024</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Revenue grew </w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>12%</w:t></w:r></w:p>
<w:p/>
<w:p><w:r><w:t>Owner:</w:t><w:tab/><w:t>Executive</w:t></w:r></w:p>`)

		text, err := etree.NewDocxExtractor().ExtractText("plan.docx", data)

		require.NoError(t, err)
		assert.Equal(t, "Q4 Strategy 2024\nRevenue grew 12%\nOwner:\tExecutive", text)
	})

	t.Run("includes hyperlinks and table cells", func(t *testing.T) {
		t.Parallel()

		data := buildDocx(t, `
<w:p><w:hyperlink><w:r><w:t>Brand book</w:t></w:r></w:hyperlink></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Creative</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>10k</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`)

		text, err := etree.NewDocxExtractor().ExtractText("brand.docx", data)

		require.NoError(t, err)
		assert.Equal(t, "Brand book\nCreative\n10k", text)
	})

	t.Run("turns line breaks into spaces", func(t *testing.T) {
		t.Parallel()

		data := buildDocx(t, `<w:p><w:r><w:t>First</w:t><w:br/><w:t>second</w:t></w:r></w:p>`)

		text, err := etree.NewDocxExtractor().ExtractText("notes.docx", data)

		require.NoError(t, err)
		assert.Equal(t, "First second", text)
	})

	t.Run("returns empty text for empty body", func(t *testing.T) {
		t.Parallel()

		text, err := etree.NewDocxExtractor().ExtractText("empty.docx", buildDocx(t, ""))

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("rejects data that is not a zip archive", func(t *testing.T) {
		t.Parallel()

		_, err := etree.NewDocxExtractor().ExtractText("fake.docx", []byte("plain text"))

		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("rejects archive without document part", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		_, err := zw.Create("other.xml")
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		_, err = etree.NewDocxExtractor().ExtractText("other.docx", buf.Bytes())

		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("rejects malformed XML", func(t *testing.T) {
		t.Parallel()

		_, err := etree.NewDocxExtractor().ExtractText("broken.docx", buildDocx(t, "<w:p><w:r>"))

		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})
}
