package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Taxonomy    docsearch.Taxonomy
	Documents   docsearch.DocumentService
	Search      docsearch.SearchService
	Storage     docsearch.FileStorage
	Extractor   docsearch.TextExtractor
	Categorizer docsearch.Categorizer
	Ingester    *ingest.Ingester
	Writer      docsearch.DocumentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log operations to stderr"`

	Add        AddCmd        `cmd:"" help:"Upload, categorize and index files"`
	Categorize CategorizeCmd `cmd:"" help:"Show the categorization of a file without saving it"`
	Search     SearchCmd     `cmd:"" help:"Search document content"`
	List       ListCmd       `cmd:"" help:"List documents, newest first"`
	Show       ShowCmd       `cmd:"" help:"Show a document with its extracted text"`
	Delete     DeleteCmd     `cmd:"" help:"Delete a document and its stored file"`
	Taxonomy   TaxonomyCmd   `cmd:"" help:"Print the taxonomy as YAML"`
	Export     ExportCmd     `cmd:"" help:"Write documents as markdown files"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Files          []string `arg:"" name:"file" type:"path" help:"Files to upload (.txt, .md, .html, .docx, .pdf)"`
	Title          string   `short:"t" help:"Document title (single file only; defaults to the file name)"`
	Concurrency    int      `short:"c" default:"4" help:"Files processed at once"`
	Rate           float64  `short:"r" default:"2" help:"Categorization requests per second (0 for unlimited)"`
	SkipDuplicates bool     `short:"s" name:"skip-duplicates" help:"Skip files whose text is already indexed"`
	Strict         bool     `help:"Replace values outside the taxonomy with fallbacks"`
}

// CategorizeCmd is the "categorize" subcommand.
type CategorizeCmd struct {
	File   string `arg:"" type:"path" help:"File to categorize"`
	Strict bool   `help:"Replace values outside the taxonomy with fallbacks"`
}

// Filter holds taxonomy filter flags shared by commands.
type Filter struct {
	Topic   string `help:"Only documents with this topic"`
	Project string `help:"Only documents with this project"`
	Team    string `help:"Only documents of this team"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query []string `arg:"" help:"Search terms: words, \"phrases\", or, -excluded, prefix*"`
	Limit int      `short:"n" default:"10" help:"Maximum number of results"`

	Filter `embed:""`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit  int `short:"n" help:"Maximum number of documents"`
	Offset int `help:"Number of documents to skip"`

	Filter `embed:""`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Document ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Force bool   `help:"Confirm deletion"`
}

// TaxonomyCmd is the "taxonomy" subcommand.
type TaxonomyCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" type:"path" help:"Output directory"`

	Filter `embed:""`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
