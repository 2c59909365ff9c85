// Package ingest turns uploaded files into indexed, categorized documents.
// It coordinates text extraction, duplicate detection, categorization,
// file storage and persistence.
package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/bloom"
	"golang.org/x/sync/errgroup"
)

// Duplicate filter sizing.
const (
	// filterHeadroom is the number of new hashes the filter is sized for
	// beyond those already stored.
	filterHeadroom = 10000
	// filterFalsePositiveRate is the acceptable false positive rate. A false
	// positive costs one database lookup.
	filterFalsePositiveRate = 0.01
)

// DefaultConcurrency is the number of uploads processed at once.
const DefaultConcurrency = 4

// Ingester processes uploads into documents.
type Ingester struct {
	Extractor    docsearch.TextExtractor
	Categorizer  docsearch.Categorizer
	Storage      docsearch.FileStorage
	Documents    docsearch.DocumentService
	TokenCounter docsearch.TokenCounter // optional
	RateLimiter  docsearch.RateLimiter  // optional; paces Categorize calls
	Concurrency  int

	// SkipDuplicates rejects uploads whose extracted text matches a stored
	// document or another upload of the same batch.
	SkipDuplicates bool

	mu       sync.Mutex
	hashes   *bloom.Filter
	inflight map[string]bool
}

// Result holds the outcome of a batch ingestion.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
	Bytes   int64
	Tokens  int

	// Items holds one entry per upload, in input order.
	Items []Item
}

// Item is the outcome of a single upload.
type Item struct {
	Name     string
	Document *docsearch.Document
	Err      error
}

// ProgressEvent reports progress during a batch ingestion.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Name      string
	Document  *docsearch.Document
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting ingestion progress.
type ProgressFunc func(event ProgressEvent)

// DuplicateError rejects an upload whose text is already indexed or is being
// added by another upload of the same batch. It unwraps to an ECONFLICT
// application error.
type DuplicateError struct {
	// Existing is the stored document with the same content. It is nil when
	// the other copy is still being added.
	Existing *docsearch.Document
}

func (e *DuplicateError) Error() string {
	return e.Unwrap().Error()
}

func (e *DuplicateError) Unwrap() error {
	if e.Existing == nil {
		return docsearch.Errorf(docsearch.ECONFLICT, "same content is already being added")
	}
	return docsearch.Errorf(docsearch.ECONFLICT, "duplicate of document %s (%s)", e.Existing.ID, e.Existing.Title)
}

// IsDuplicate reports whether err rejected an upload as a duplicate. Other
// conflicts, such as a storage key collision, are not duplicates.
func IsDuplicate(err error) bool {
	var dup *DuplicateError
	return errors.As(err, &dup)
}

// Ingest processes a single upload. Categorization never fails the upload:
// when inference is unavailable the taxonomy default is stored. If the
// document cannot be saved, the stored file is removed again.
func (i *Ingester) Ingest(ctx context.Context, upload *docsearch.Upload) (*docsearch.Document, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	text, err := i.Extractor.ExtractText(upload.Name, upload.Data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "no text could be extracted from %s", upload.Name)
	}

	hash := docsearch.HashContent(text)
	if i.SkipDuplicates {
		release, err := i.claim(ctx, hash)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	if i.RateLimiter != nil {
		if err := i.RateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	categorization := i.Categorizer.Categorize(ctx, text)

	stored, err := i.Storage.Store(ctx, upload.Name, upload.Data)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(upload.Title)
	if title == "" {
		title = docsearch.TitleFromFileName(upload.Name)
	}

	doc := &docsearch.Document{
		Title:       title,
		FileName:    filepath.Base(filepath.ToSlash(upload.Name)),
		FileKey:     stored.Key,
		FileURL:     stored.URL,
		ContentType: stored.ContentType,
		Size:        stored.Size,
		Content:     text,
	}
	doc.SetCategorization(categorization)

	if err := i.Documents.CreateDocument(ctx, doc); err != nil {
		_ = i.Storage.Delete(context.WithoutCancel(ctx), stored.Key)
		return nil, err
	}

	if i.SkipDuplicates {
		i.remember(hash)
	}
	return doc, nil
}

// IngestAll processes uploads concurrently and reports progress.
// Individual failures are counted, not returned; the error is non-nil only
// if the batch could not start or ctx was canceled.
func (i *Ingester) IngestAll(ctx context.Context, uploads []*docsearch.Upload, progress ProgressFunc) (*Result, error) {
	if i.SkipDuplicates {
		if err := i.loadHashes(ctx); err != nil {
			return nil, err
		}
	}

	concurrency := i.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(uploads)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	type itemResult struct {
		position int
		item     Item
	}
	resultCh := make(chan itemResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for pos, upload := range uploads {
			g.Go(func() error {
				doc, err := i.Ingest(gctx, upload)
				resultCh <- itemResult{
					position: pos,
					item:     Item{Name: upload.Name, Document: doc, Err: err},
				}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	result := &Result{Items: make([]Item, total)}
	var completed atomic.Int64
	for r := range resultCh {
		n := int(completed.Add(1))
		result.Items[r.position] = r.item

		event := ProgressEvent{
			Completed: n,
			Total:     total,
			Name:      r.item.Name,
			Document:  r.item.Document,
			Error:     r.item.Err,
		}
		switch {
		case r.item.Err == nil:
			result.Saved++
			result.Bytes += r.item.Document.Size
			event.Type = ProgressCompleted
		case IsDuplicate(r.item.Err):
			result.Skipped++
			event.Type = ProgressSkipped
		default:
			result.Failed++
			event.Type = ProgressFailed
		}
		if progress != nil {
			progress(event)
		}
	}

	if i.TokenCounter != nil {
		for _, item := range result.Items {
			if item.Document == nil {
				continue
			}
			if tokens, err := i.TokenCounter.CountTokens(ctx, item.Document.Content); err == nil {
				result.Tokens += tokens
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return result, ctx.Err()
}

// loadHashes seeds the duplicate filter from stored documents once.
func (i *Ingester) loadHashes(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.hashes != nil {
		return nil
	}
	hashes, err := i.Documents.FindContentHashes(ctx)
	if err != nil {
		return err
	}
	i.hashes = bloom.NewFilterFrom(hashes, filterHeadroom, filterFalsePositiveRate)
	i.inflight = make(map[string]bool)
	return nil
}

// claim reserves hash for the caller. It returns a *DuplicateError if a
// stored document or a concurrent upload has the same content.
func (i *Ingester) claim(ctx context.Context, hash string) (release func(), err error) {
	if err := i.loadHashes(ctx); err != nil {
		return nil, err
	}

	i.mu.Lock()
	if i.inflight[hash] {
		i.mu.Unlock()
		return nil, &DuplicateError{}
	}
	i.inflight[hash] = true
	i.mu.Unlock()

	release = func() {
		i.mu.Lock()
		delete(i.inflight, hash)
		i.mu.Unlock()
	}

	if i.hashes.Test(hash) {
		docs, err := i.Documents.FindDocuments(ctx, docsearch.DocumentFilter{ContentHash: &hash, Limit: 1})
		if err != nil {
			release()
			return nil, err
		}
		if len(docs) > 0 {
			release()
			return nil, &DuplicateError{Existing: docs[0]}
		}
	}
	return release, nil
}

func (i *Ingester) remember(hash string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.hashes.Add(hash)
}
