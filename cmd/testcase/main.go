package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyleconroy/sqltree/parser"
)

func main() {
	name := flag.String("name", "", "Test directory name to create under parser/testdata")
	flag.Parse()

	if *name == "" || flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: go run ./cmd/testcase -name <case> '<query>'\n")
		os.Exit(1)
	}
	query := strings.TrimSpace(flag.Arg(0))

	testDir := filepath.Join("parser/testdata", *name)
	if _, err := os.Stat(testDir); err == nil {
		fmt.Fprintf(os.Stderr, "%s already exists\n", testDir)
		os.Exit(1)
	}
	if err := os.MkdirAll(testDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", testDir, err)
		os.Exit(1)
	}

	if err := os.WriteFile(filepath.Join(testDir, "query.sql"), []byte(query+"\n"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing query.sql: %v\n", err)
		os.Exit(1)
	}

	output, file := "", "tree.txt"
	stmt, err := parser.ParseString(query)
	if err != nil {
		output, file = err.Error(), "error.txt"
	} else {
		output = parser.Explain(stmt)
	}
	if err := os.WriteFile(filepath.Join(testDir, file), []byte(output+"\n"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", file, err)
		os.Exit(1)
	}

	fmt.Printf("%s/%s:\n%s\n", testDir, file, output)
}
