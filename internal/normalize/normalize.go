// Package normalize provides query normalization functions for comparing
// semantically equivalent queries that differ in spelling or layout.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexes for performance
var (
	stringLiteralRegex = regexp.MustCompile(`'(?:[^']|'')*'`)
	lineCommentRegex   = regexp.MustCompile(`//[^\n]*`)
	blockCommentRegex  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	whitespaceRegex    = regexp.MustCompile(`\s+`)
	operatorSpaceRegex = regexp.MustCompile(`\s*(<>|<=|>=|[=<>+\-*/])\s*`)
	commaSpaceRegex    = regexp.MustCompile(`\s*,\s*`)
	openParenRegex     = regexp.MustCompile(`\(\s*`)
	closeParenRegex    = regexp.MustCompile(`\s*\)`)
	numberRegex        = regexp.MustCompile(`(^|[^\w.])((?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
	keywordRegex       = regexp.MustCompile(`(?i)\b(select|from|where|group|by|having|order|as|and|or)\b`)
)

// Query normalizes a query for comparison:
//   - comments are removed
//   - keywords are upper-cased
//   - numbers are written in their shortest form (1.0 and 1 compare equal)
//   - operators get exactly one space on each side, commas one after
//   - parentheses get no inner padding
//   - runs of whitespace collapse to a single space
//
// Quoted strings are left untouched.
func Query(s string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range stringLiteralRegex.FindAllStringIndex(s, -1) {
		sb.WriteString(code(s[last:loc[0]]))
		sb.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(code(s[last:]))
	return strings.TrimSpace(sb.String())
}

// code normalizes a stretch of query text that holds no string literals.
func code(s string) string {
	s = blockCommentRegex.ReplaceAllString(s, " ")
	s = lineCommentRegex.ReplaceAllString(s, " ")
	s = keywordRegex.ReplaceAllStringFunc(s, strings.ToUpper)
	s = numberRegex.ReplaceAllStringFunc(s, normalizeNumber)
	s = operatorSpaceRegex.ReplaceAllString(s, " $1 ")
	s = commaSpaceRegex.ReplaceAllString(s, ", ")
	s = openParenRegex.ReplaceAllString(s, "(")
	s = closeParenRegex.ReplaceAllString(s, ")")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

func normalizeNumber(match string) string {
	prefix, num := "", match
	if c := match[0]; c != '.' && (c < '0' || c > '9') {
		prefix, num = match[:1], match[1:]
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return match
	}
	return prefix + strconv.FormatFloat(v, 'g', -1, 64)
}

// Whitespace collapses runs of whitespace to a single space and trims the
// ends.
func Whitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}
