package explain_test

import (
	"math"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kyleconroy/sqltree/ast"
	"github.com/kyleconroy/sqltree/internal/explain"
	"github.com/kyleconroy/sqltree/parser"
)

func TestExplain(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Explain Suite")
}

func render(query string) string {
	stmt, err := parser.ParseString(query)
	Expect(err).NotTo(HaveOccurred())
	return explain.Explain(stmt)
}

func lines(s ...string) string {
	return strings.Join(s, "\n")
}

var _ = Describe("Tree", func() {
	Describe("select statements", func() {
		It("renders every clause of a full query", func() {
			got := render("SELECT SUM(salary), name FROM employees WHERE department = 'IT' " +
				"GROUP BY department HAVING COUNT(*) > 1 ORDER BY salary")
			Expect(got).To(Equal(lines(
				"select",
				"├─ ...",
				"│  ├─ call",
				"│  │  ├─ SUM",
				"│  │  └─ salary",
				"│  └─ name",
				"├─ employees",
				"├─ where",
				"│  └─ =",
				"│     ├─ department",
				"│     └─ 'IT'",
				"├─ group by",
				"│  └─ department",
				"├─ having",
				"│  └─ >",
				"│     ├─ call",
				"│     │  ├─ COUNT",
				"│     │  └─ *",
				"│     └─ 1.0",
				"└─ order by",
				"   └─ salary",
			)))
		})

		It("renders an aliased sub-select", func() {
			got := render("SELECT *, (SELECT MAX(salary) FROM employees) AS max_salary " +
				"FROM employees WHERE department = 'IT'")
			Expect(got).To(Equal(lines(
				"select",
				"├─ ...",
				"│  ├─ *",
				"│  └─ as max_salary",
				"│     └─ select",
				"│        ├─ ...",
				"│        │  └─ call",
				"│        │     ├─ MAX",
				"│        │     └─ salary",
				"│        ├─ employees",
				"│        ├─ where",
				"│        ├─ group by",
				"│        ├─ having",
				"│        └─ order by",
				"├─ employees",
				"├─ where",
				"│  └─ =",
				"│     ├─ department",
				"│     └─ 'IT'",
				"├─ group by",
				"├─ having",
				"└─ order by",
			)))
		})

		It("still renders empty clauses", func() {
			Expect(explain.Tree(mustParse("SELECT * FROM t"))).To(Equal([]string{
				"select",
				"├─ ...",
				"│  └─ *",
				"├─ t",
				"├─ where",
				"├─ group by",
				"├─ having",
				"└─ order by",
			}))
		})

		It("is deterministic", func() {
			stmt := mustParse("SELECT a + 2 * b AS x, f(a, b) FROM t WHERE a > 1 AND b < 2 OR c = 3")
			first := explain.Tree(stmt)
			Expect(explain.Tree(stmt)).To(Equal(first))
			Expect(explain.Tree(mustParse("SELECT a + 2 * b AS x, f(a, b) FROM t WHERE a > 1 AND b < 2 OR c = 3"))).To(Equal(first))
		})
	})

	Describe("expressions", func() {
		It("nests tighter operators under looser ones", func() {
			stmt := mustParse("SELECT a + 2 * b FROM t")
			Expect(explain.Tree(stmt.Columns)).To(Equal([]string{
				"...",
				"└─ +",
				"   ├─ a",
				"   └─ *",
				"      ├─ 2.0",
				"      └─ b",
			}))
		})

		It("renders logical operators in lower case", func() {
			stmt := mustParse("select x from t where a > 1 AND b < 2 Or c")
			Expect(explain.Tree(stmt.Where)).To(Equal([]string{
				"where",
				"└─ or",
				"   ├─ and",
				"   │  ├─ >",
				"   │  │  ├─ a",
				"   │  │  └─ 1.0",
				"   │  └─ <",
				"   │     ├─ b",
				"   │     └─ 2.0",
				"   └─ c",
			}))
		})

		It("renders a call with no arguments", func() {
			call := &ast.FunctionCall{Name: &ast.Identifier{Name: "now"}}
			Expect(explain.Tree(call)).To(Equal([]string{"call", "└─ now"}))
		})
	})

	DescribeTable("labels",
		func(node ast.Node, want string) {
			Expect(explain.Label(node)).To(Equal(want))
		},
		Entry("integral number", &ast.NumberLiteral{Value: 1}, "1.0"),
		Entry("zero", &ast.NumberLiteral{Value: 0}, "0.0"),
		Entry("fraction", &ast.NumberLiteral{Value: 0.5}, "0.5"),
		Entry("large number", &ast.NumberLiteral{Value: 1e20}, "1e+20"),
		Entry("small number", &ast.NumberLiteral{Value: 0.00001}, "1e-05"),
		Entry("below exponent threshold", &ast.NumberLiteral{Value: 123456789012345}, "123456789012345.0"),
		Entry("overflow", &ast.NumberLiteral{Value: math.Inf(1)}, "inf"),
		Entry("identifier", &ast.Identifier{Name: "salary"}, "salary"),
		Entry("quoted string", &ast.Identifier{Name: "it's", Quoted: true}, "'it''s'"),
		Entry("wildcard", &ast.Identifier{Name: ast.Wildcard}, "*"),
		Entry("not-equal", &ast.BinaryOperation{Op: ast.OpNeq}, "<>"),
		Entry("alias", &ast.AliasedExpression{Alias: &ast.Identifier{Name: "total"}}, "as total"),
		Entry("order by", &ast.Clause{Kind: ast.OrderBy}, "order by"),
		Entry("group by", &ast.Clause{Kind: ast.GroupBy}, "group by"),
		Entry("expression list", &ast.ExpressionList{}, "..."),
	)
})

func mustParse(query string) *ast.SelectStatement {
	stmt, err := parser.ParseString(query)
	Expect(err).NotTo(HaveOccurred())
	return stmt
}
