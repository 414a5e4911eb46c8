package engine

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoFix is returned by Rewrite for a rule without a fix template.
	ErrNoFix = errors.New("engine: rule has no fix")
)

// Rule is a declarative search, usually loaded from a YAML file:
//
//	id: no-console
//	language: javascript
//	query: |
//	  (call_expression
//	    function: (member_expression object: (identifier) @obj)) @call
//	capture: call
//	where:
//	  - capture: obj
//	    matches: ^console$
//	fix: ""
//
// Query is a tree-sitter pattern. Capture names the capture the match
// span and fix anchor on; when empty the match covers all captures.
// Each where entry keeps only matches whose capture text satisfies the
// regex. Fix is a replacement template in which @name expands to the
// text of that capture.
type Rule struct {
	ID       string       `yaml:"id,omitempty"`
	Language string       `yaml:"language"`
	Query    string       `yaml:"query"`
	Capture  string       `yaml:"capture,omitempty"`
	Where    []Constraint `yaml:"where,omitempty"`
	Fix      string       `yaml:"fix,omitempty"`
	Message  string       `yaml:"message,omitempty"`
}

// Constraint restricts a rule to matches whose capture text satisfies
// a regular expression.
type Constraint struct {
	Capture string `yaml:"capture"`
	Matches string `yaml:"matches"`
}

// ParseRule decodes and validates a YAML rule document.
func ParseRule(data []byte) (Rule, error) {
	var r Rule
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rule{}, fmt.Errorf("engine: parse rule: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Validate checks the rule is runnable: a language, a query, and
// compilable constraint regexes.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Language) == "" {
		return errors.New("engine: rule needs a language")
	}
	if strings.TrimSpace(r.Query) == "" {
		return errors.New("engine: rule needs a query")
	}
	for _, w := range r.Where {
		if w.Capture == "" {
			return errors.New("engine: constraint needs a capture name")
		}
		if _, err := regexp.Compile(w.Matches); err != nil {
			return fmt.Errorf("engine: constraint on %q: %w", w.Capture, err)
		}
	}
	return nil
}

// expandFix substitutes @name references with capture text. Longer
// names are substituted first so @foobar never partially matches @foo.
func expandFix(tmpl string, captures map[string]string) string {
	if len(captures) == 0 || !strings.Contains(tmpl, "@") {
		return tmpl
	}
	names := make([]string, 0, len(captures))
	for name := range captures {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "@"+name, captures[name])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
