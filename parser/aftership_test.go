package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"

	"github.com/kyleconroy/sqltree/parser"
)

// tryParseWithAfterShip attempts to parse a query with AfterShip parser, recovering from panics.
func tryParseWithAfterShip(query string) (stmts []aftership.Expr, parseErr error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			parseErr = nil
			stmts = nil
		}
	}()
	p := aftership.NewParser(query)
	stmts, parseErr = p.ParseStmts()
	return stmts, parseErr, false
}

// TestAfterShipParser checks that the ClickHouse parser from AfterShip
// accepts the canonical form of every query that parses here.
// Use with: go test ./parser -run TestAfterShipParser -v
func TestAfterShipParser(t *testing.T) {
	testdataDir := "testdata"

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("Failed to read testdata directory: %v", err)
	}

	var passed, skipped int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		testDir := filepath.Join(testdataDir, entry.Name())

		t.Run(entry.Name(), func(t *testing.T) {
			if _, err := os.Stat(filepath.Join(testDir, "error.txt")); err == nil {
				skipped++
				t.Skip("Skipping: query is intentionally invalid")
			}
			if readMetadata(t, testDir).Skip {
				skipped++
				t.Skip("Skipping: skip is true in metadata")
			}

			query := parser.Format(mustParse(t, readQuery(t, testDir)))

			stmts, parseErr, panicked := tryParseWithAfterShip(query)
			switch {
			case panicked:
				t.Errorf("AfterShip parser crashed\nQuery: %s", query)
			case parseErr != nil:
				t.Errorf("AfterShip parse error: %v\nQuery: %s", parseErr, query)
			case len(stmts) != 1:
				t.Errorf("AfterShip parser returned %d statements, want 1\nQuery: %s", len(stmts), query)
			default:
				passed++
			}
		})
	}

	t.Logf("AfterShip parser: %d passed, %d skipped", passed, skipped)
}
