package cst_test

import (
	"testing"

	"github.com/kyleconroy/sqltree/cst"
	"github.com/kyleconroy/sqltree/lexer"
	"github.com/kyleconroy/sqltree/token"
)

func TestPretty(t *testing.T) {
	item := func(tok token.Token, v string) lexer.Item {
		return lexer.Item{Token: tok, Value: v}
	}
	tree := cst.Tree(cst.RuleSelect, token.Position{},
		cst.Tree(cst.RuleExprList, token.Position{},
			cst.Tree(cst.RuleBinary, token.Position{},
				cst.Leaf(cst.RuleIdent, item(token.NAME, "a")),
				cst.Leaf(cst.RuleOp, item(token.PLUS, "+")),
				cst.Leaf(cst.RuleNum, item(token.NUMBER, "1")),
			),
		),
		cst.Leaf(cst.RuleIdent, item(token.NAME, "t")),
		cst.Tree(cst.RuleWhereClause, token.Position{},
			cst.Leaf(cst.RuleString, item(token.STRING, "it's")),
		),
	)

	want := "select\n" +
		"  expr_list\n" +
		"    binary\n" +
		"      ident\ta\n" +
		"      op\t+\n" +
		"      num\t1\n" +
		"  ident\tt\n" +
		"  where_clause\n" +
		"    string\t'it''s'\n"

	if got := cst.Pretty(tree); got != want {
		t.Errorf("Pretty mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRuleString(t *testing.T) {
	if got := cst.RuleGroupClause.String(); got != "group_clause" {
		t.Errorf("RuleGroupClause.String() = %q", got)
	}
	if got := cst.Rule(99).String(); got != "Rule(99)" {
		t.Errorf("Rule(99).String() = %q", got)
	}
	if !cst.RuleOp.IsLeaf() || cst.RuleCall.IsLeaf() {
		t.Error("IsLeaf misclassifies rules")
	}
}
