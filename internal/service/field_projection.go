package service

import (
	"fmt"
	"regexp"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	apperrors "github.com/target/mmk-usersession/internal/errors"
)

const wildcard = "*"

var selectorSegment = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (jmespathLibEvaluator) Validate(expr string) error {
	_, err := jmespath.Compile(expr)
	return err
}

func (jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// FieldProjector narrows a stored profile to a list of dotted field selectors,
// the way the users API answers ?fields=.
//
//   - "*" selects every top-level field; nested objects collapse to their id.
//   - "a.*" selects the whole nested object a.
//   - "a.b" selects the nested value at that path.
//
// Selectors that resolve to nothing are skipped.
type FieldProjector struct {
	eval JMESPathEvaluator
}

// NewFieldProjector builds a projector. A nil evaluator selects go-jmespath.
func NewFieldProjector(eval JMESPathEvaluator) *FieldProjector {
	if eval == nil {
		eval = jmespathLibEvaluator{}
	}
	return &FieldProjector{eval: eval}
}

// Project returns a new record holding only the selected fields. No selectors
// means "*".
func (p *FieldProjector) Project(rec domainuser.Record, fields []string) (domainuser.Record, error) {
	if len(fields) == 0 {
		fields = []string{wildcard}
	}

	paths := make([][]string, 0, len(fields))
	for _, f := range fields {
		segs, err := p.parse(f)
		if err != nil {
			return nil, err
		}
		paths = append(paths, segs)
	}

	out := domainuser.Record{}
	// Wildcards first so explicit paths overlay collapsed relations.
	for _, segs := range paths {
		if len(segs) == 1 && segs[0] == wildcard {
			for k, v := range rec {
				out[k] = collapse(v)
			}
		}
	}
	for _, segs := range paths {
		if len(segs) == 1 && segs[0] == wildcard {
			continue
		}
		if err := p.apply(out, rec, segs); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *FieldProjector) parse(selector string) ([]string, error) {
	sel := strings.TrimSpace(selector)
	if sel == wildcard {
		return []string{wildcard}, nil
	}
	segs := strings.Split(sel, ".")
	for i, seg := range segs {
		if seg == wildcard && i == len(segs)-1 && i > 0 {
			continue
		}
		if !selectorSegment.MatchString(seg) {
			return nil, apperrors.ValidationField("fields", fmt.Sprintf("invalid field selector %q", selector))
		}
	}
	return segs, nil
}

func (p *FieldProjector) apply(out, rec domainuser.Record, segs []string) error {
	target := segs
	if segs[len(segs)-1] == wildcard {
		target = segs[:len(segs)-1]
	}
	expr := strings.Join(target, ".")
	if err := p.eval.Validate(expr); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeValidation, "compile field selector %q", expr)
	}
	val, err := p.eval.Evaluate(expr, map[string]any(rec))
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "evaluate field selector %q", expr)
	}
	if val == nil {
		return nil
	}
	setPath(out, target, val)
	return nil
}

// collapse reduces an expanded relation to its primary key. Objects without an
// id are plain JSON values and are kept whole.
func collapse(v any) any {
	if m, ok := v.(map[string]any); ok {
		if id, has := m[domainuser.FieldID]; has {
			return id
		}
	}
	return domainuser.CloneValue(v)
}

func setPath(out domainuser.Record, segs []string, val any) {
	cur := map[string]any(out)
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	last := segs[len(segs)-1]
	if existing, ok := cur[last].(map[string]any); ok {
		if incoming, ok := val.(map[string]any); ok {
			cur[last] = map[string]any(domainuser.Merge(existing, incoming))
			return
		}
	}
	cur[last] = domainuser.CloneValue(val)
}
