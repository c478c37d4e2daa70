// Package eval evaluates the arithmetic expressions typed into the notes
// editor. A trailing "=" on the last line asks for the line to be rewritten
// in place as "expr=result".
package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// Evaluate parses and evaluates a single arithmetic expression and returns
// the result formatted for insertion into the notes. Failures carry the
// offending input so the UI can show a useful warning.
func Evaluate(expr string) (string, error) {
	parsed, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return "", fmt.Errorf("cannot parse %q: %w", expr, err)
	}
	v, err := parsed.Evaluate(nil)
	if err != nil {
		return "", fmt.Errorf("cannot evaluate %q: %w", expr, err)
	}
	return formatResult(v), nil
}

func formatResult(v interface{}) string {
	switch n := v.(type) {
	case float64:
		// Whole numbers print without a decimal point: 2+2 is 4, not 4.0.
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return strconv.FormatFloat(n, 'f', 0, 64)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	case string:
		return n
	}
	return fmt.Sprintf("%v", v)
}

// AutoCalc implements the notes auto-calc rule: if the last line of text
// ends with "=", the expression before it is evaluated and the line becomes
// "expr=result". The second return reports whether text was rewritten. An
// evaluation failure returns the text unchanged along with the error; the
// caller decides how to warn the user.
func AutoCalc(text string) (string, bool, error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return text, false, nil
	}
	last := lines[len(lines)-1]
	if !strings.HasSuffix(last, "=") {
		return text, false, nil
	}
	expr := strings.TrimSpace(strings.TrimSuffix(last, "="))
	if expr == "" {
		return text, false, nil
	}
	result, err := Evaluate(expr)
	if err != nil {
		return text, false, err
	}
	lines[len(lines)-1] = expr + "=" + result
	return strings.Join(lines, "\n"), true, nil
}
