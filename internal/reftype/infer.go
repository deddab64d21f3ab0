package reftype

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprRule is a user-configured inference rule: an expr-lang predicate
// expression over the label name and enclosing environment kind, and
// the tag proposed when it evaluates to true.
//
// Example: {When: `env in ["table"] or name startsWith "tab:"`, Tag: "cref"}.
type ExprRule struct {
	When string `json:"when"`
	Tag  string `json:"tag"`
}

// LoadRules reads a JSON file holding an array of ExprRule entries.
func LoadRules(path string) ([]ExprRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference rules: %w", err)
	}
	var rules []ExprRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse inference rules: %w", err)
	}
	return rules, nil
}

// ruleEnv is the evaluation environment exposed to rule expressions.
type ruleEnv struct {
	Name string `expr:"name"`
	Env  string `expr:"env"`
}

// CompileRules compiles configured predicate expressions into inference
// rules. Expressions are compiled once here; evaluation failures at
// inference time make the rule a non-match rather than an error, so a
// bad rule can never break lookup.
func CompileRules(rules []ExprRule) ([]InferenceRule, error) {
	out := make([]InferenceRule, 0, len(rules))
	for i, r := range rules {
		if r.When == "" {
			return nil, fmt.Errorf("rule %d: empty predicate expression", i)
		}
		if r.Tag == "" {
			return nil, fmt.Errorf("rule %d: empty tag", i)
		}
		program, err := expr.Compile(r.When, expr.Env(ruleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("rule %d: compile %q: %w", i, r.When, err)
		}
		out = append(out, InferenceRule{
			Tag:       r.Tag,
			Predicate: exprPredicate(program),
		})
	}
	return out, nil
}

func exprPredicate(program *vm.Program) func(name, env string) bool {
	return func(name, env string) bool {
		result, err := expr.Run(program, ruleEnv{Name: name, Env: env})
		if err != nil {
			return false
		}
		b, ok := result.(bool)
		return ok && b
	}
}
