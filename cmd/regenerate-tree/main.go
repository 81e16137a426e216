package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyleconroy/sqltree/parser"
)

func main() {
	testName := flag.String("test", "", "Single test directory name to process (if empty, process all)")
	testdataDir := flag.String("dir", "parser/testdata", "Directory holding the test cases")
	dryRun := flag.Bool("dry-run", false, "Print trees without writing them")
	flag.Parse()

	if *testName != "" {
		if err := processTest(filepath.Join(*testdataDir, *testName), *dryRun); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", *testName, err)
			os.Exit(1)
		}
		return
	}

	entries, err := os.ReadDir(*testdataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading testdata: %v\n", err)
		os.Exit(1)
	}

	var failures []string
	var processed int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := processTest(filepath.Join(*testdataDir, entry.Name()), *dryRun); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", entry.Name(), err))
			continue
		}
		processed++
	}

	fmt.Printf("\nProcessed: %d, Errors: %d\n", processed, len(failures))
	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "\nErrors:\n")
		for _, e := range failures {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		os.Exit(1)
	}
}

// processTest writes tree.txt for a query that parses and error.txt for one
// that does not, removing whichever of the two no longer applies.
func processTest(testDir string, dryRun bool) error {
	queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
	if err != nil {
		return fmt.Errorf("reading query.sql: %w", err)
	}
	query := strings.TrimSpace(string(queryBytes))

	treePath := filepath.Join(testDir, "tree.txt")
	errorPath := filepath.Join(testDir, "error.txt")

	output, outputPath, stalePath := "", treePath, errorPath
	stmt, err := parser.ParseString(query)
	if err != nil {
		output, outputPath, stalePath = err.Error(), errorPath, treePath
	} else {
		output = parser.Explain(stmt)
	}

	if dryRun {
		fmt.Printf("%s (%s):\n%s\n", filepath.Base(testDir), filepath.Base(outputPath), output)
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	if err := os.Remove(stalePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", stalePath, err)
	}
	fmt.Printf("%s -> %s\n", filepath.Base(testDir), filepath.Base(outputPath))
	return nil
}
