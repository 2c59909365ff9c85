package main

import "github.com/fwojciec/docsearch/yaml"

// Run executes the taxonomy command.
func (c *TaxonomyCmd) Run(deps *Dependencies) error {
	return yaml.WriteTaxonomy(deps.Stdout, deps.Taxonomy)
}
