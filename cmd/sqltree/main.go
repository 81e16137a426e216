// Command sqltree parses queries and prints their syntax trees.
//
// With no arguments it prints the trees of two sample queries. Queries may
// also be given as arguments or read from a file with --file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/kyleconroy/sqltree/ast"
	"github.com/kyleconroy/sqltree/cst"
	"github.com/kyleconroy/sqltree/internal/normalize"
	"github.com/kyleconroy/sqltree/parser"
)

var sampleQueries = []string{
	"SELECT SUM(salary), name FROM employees WHERE department = 'IT' GROUP BY department HAVING COUNT(*) > 1 ORDER BY salary",
	"SELECT *, (SELECT MAX(salary) FROM employees) AS max_salary FROM employees WHERE department = 'IT'",
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "sqltree",
		Usage:     "print the syntax tree of SELECT queries",
		ArgsUsage: "[query ...]",
		Writer:    w,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "read a query from `FILE` (- for stdin)",
			},
			&cli.BoolFlag{
				Name:  "cst",
				Usage: "print the parse tree before the syntax tree",
			},
			&cli.BoolFlag{
				Name:  "format",
				Usage: "print the query in canonical form",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the syntax tree as JSON instead of a diagram",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "cross-check each query against the ClickHouse reference parser",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logrus.SetOutput(os.Stderr)
			logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if cmd.Bool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return ctx, nil
		},
		Action: run,
	}
}

type options struct {
	cst    bool
	format bool
	json   bool
	check  bool
}

func run(ctx context.Context, cmd *cli.Command) error {
	queries, err := collectQueries(cmd)
	if err != nil {
		return err
	}

	opts := options{
		cst:    cmd.Bool("cst"),
		format: cmd.Bool("format"),
		json:   cmd.Bool("json"),
		check:  cmd.Bool("check"),
	}

	var failed int
	for i, query := range queries {
		if i > 0 {
			fmt.Fprintln(cmd.Writer)
		}
		log := logrus.WithField("query", i+1)
		if err := explainQuery(ctx, cmd.Writer, log, query, opts); err != nil {
			log.WithError(err).Error("query rejected")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(queries))
	}
	return nil
}

func collectQueries(cmd *cli.Command) ([]string, error) {
	queries := cmd.Args().Slice()
	if path := cmd.String("file"); path != "" {
		query, err := readQuery(path)
		if err != nil {
			return nil, err
		}
		queries = append(queries, query)
	}
	if len(queries) == 0 {
		logrus.Debug("no query given, using sample queries")
		return sampleQueries, nil
	}
	return queries, nil
}

func readQuery(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("opening query file: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading query: %w", err)
	}
	return string(data), nil
}

func explainQuery(ctx context.Context, w io.Writer, log *logrus.Entry, query string, opts options) error {
	log.WithField("text", normalize.Whitespace(query)).Debug("parsing")

	if opts.cst {
		tree, err := parser.ParseTree(strings.NewReader(query))
		if err != nil {
			return err
		}
		fmt.Fprint(w, cst.Pretty(tree))
	}

	stmt, err := parser.Parse(ctx, strings.NewReader(query))
	if err != nil {
		return err
	}

	formatted := parser.Format(stmt)
	if normalize.Query(query) != normalize.Query(formatted) {
		log.WithField("canonical", formatted).Debug("query is not in canonical form")
	}

	if opts.check {
		if err := checkReference(formatted); err != nil {
			return fmt.Errorf("reference parser rejected %q: %w", formatted, err)
		}
		log.Debug("reference parser accepted query")
	}

	if opts.format {
		fmt.Fprintln(w, formatted)
	}

	if opts.json {
		return writeJSON(w, stmt)
	}

	fmt.Fprintln(w, parser.Explain(stmt))
	return nil
}

func writeJSON(w io.Writer, stmt *ast.SelectStatement) error {
	data, err := json.MarshalIndent(stmt, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tree: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
