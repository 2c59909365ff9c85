package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWALMode compares write performance between WAL and rollback journal modes.
// Every insert also updates the full-text index through triggers.
func BenchmarkWALMode(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkDocumentInserts(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkDocumentInserts(b, true)
	})
}

func openBenchDB(b *testing.B, useWAL bool) *sqlite.DB {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")
	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	mode := "DELETE"
	if useWAL {
		mode = "WAL"
	}
	_, err := db.ExecContext(context.Background(), "PRAGMA journal_mode = "+mode)
	require.NoError(b, err)

	b.Cleanup(func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	})
	return db
}

func benchDocument(i int) *docsearch.Document {
	return &docsearch.Document{
		Title:    fmt.Sprintf("Report %d", i),
		FileName: fmt.Sprintf("report-%d.txt", i),
		FileURL:  fmt.Sprintf("file:///tmp/report-%d.txt", i),
		Content: fmt.Sprintf("Report %d. Quarterly revenue and budget figures for campaign %d. "+
			"Lorem ipsum dolor sit amet, consectetur adipiscing elit.", i, i%10),
		Topic:   "Quarterly Review",
		Project: "N/A",
		Team:    "Executive",
	}
}

func benchmarkDocumentInserts(b *testing.B, useWAL bool) {
	b.Helper()

	db := openBenchDB(b, useWAL)
	ctx := context.Background()
	docSvc := sqlite.NewDocumentService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := docSvc.CreateDocument(ctx, benchDocument(i)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSearch measures ranked full-text queries over a populated index.
func BenchmarkSearch(b *testing.B) {
	const docs = 1000

	db := openBenchDB(b, true)
	ctx := context.Background()
	docSvc := sqlite.NewDocumentService(db)
	for i := 0; i < docs; i++ {
		require.NoError(b, docSvc.CreateDocument(ctx, benchDocument(i)))
	}
	search := sqlite.NewSearchService(db)

	queries := []string{"revenue", `"budget figures" campaign`, "quarter* -lorem", "ipsum or dolor"}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := search.Search(ctx, queries[i%len(queries)], docsearch.SearchOptions{Limit: 20}); err != nil {
			b.Fatal(err)
		}
	}
}
