package main

import (
	"errors"
	"fmt"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"
)

var errNoStatements = errors.New("no statements returned")

// checkReference parses query with the ClickHouse parser from AfterShip.
// The reference parser panics on some inputs; a panic is reported as an
// error.
func checkReference(query string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reference parser crashed: %v", r)
		}
	}()

	p := aftership.NewParser(query)
	stmts, err := p.ParseStmts()
	if err != nil {
		return err
	}
	if len(stmts) == 0 {
		return errNoStatements
	}
	return nil
}
