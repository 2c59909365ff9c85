// Package yaml loads and writes taxonomy files.
//
// A taxonomy file lists the permitted values of each field in prompt order
// and the fallback used when nothing applies:
//
//	topics: [Invoices, Contracts, Other]
//	projects: [Alpha, None]
//	teams: [Finance, Legal]
//	topicFallback: Other
//	projectFallback: None
//	teamFallback: Finance
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/docsearch"
	"gopkg.in/yaml.v3"
)

// LoadTaxonomy loads a taxonomy from a YAML file.
func LoadTaxonomy(path string) (docsearch.Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return docsearch.Taxonomy{}, docsearch.Errorf(docsearch.ENOTFOUND, "taxonomy file %s not found", path)
		}
		return docsearch.Taxonomy{}, err
	}
	return ParseTaxonomy(data)
}

// ParseTaxonomy decodes and validates a taxonomy. Unknown keys are
// rejected so misspelled fields do not silently fall back to empty lists.
func ParseTaxonomy(data []byte) (docsearch.Taxonomy, error) {
	var tax docsearch.Taxonomy

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tax); err != nil {
		if errors.Is(err, io.EOF) {
			return docsearch.Taxonomy{}, docsearch.Errorf(docsearch.EINVALID, "taxonomy file is empty")
		}
		return docsearch.Taxonomy{}, docsearch.Errorf(docsearch.EINVALID, "invalid taxonomy: %v", err)
	}

	if err := tax.Validate(); err != nil {
		return docsearch.Taxonomy{}, err
	}
	return tax, nil
}

// WriteTaxonomy encodes tax as YAML.
func WriteTaxonomy(w io.Writer, tax docsearch.Taxonomy) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tax); err != nil {
		return err
	}
	return enc.Close()
}
