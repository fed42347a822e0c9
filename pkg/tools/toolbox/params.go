package toolbox

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/helioslabs/prodinfo/pkg/toolerr"
)

// checkArgs validates args against the tool's declared parameters and returns
// a fresh Args with coerced values and defaults applied. Every offending field
// — missing required, uncoercible value, or undeclared name — is collected so
// the error lists all of them at once.
func (t Tool) checkArgs(args Args) (Args, error) {
	checked := make(Args, len(t.Params))

	var bad []string

	declared := make(map[string]struct{}, len(t.Params))

	for _, p := range t.Params {
		declared[p.Name] = struct{}{}

		v, ok := args[p.Name]
		if !ok || v == nil {
			if p.Required {
				bad = append(bad, p.Name)
				continue
			}

			if p.Default != nil {
				checked[p.Name] = p.Default
			}

			continue
		}

		cv, ok := coerce(p.Type, v)
		if !ok {
			bad = append(bad, p.Name)
			continue
		}

		checked[p.Name] = cv
	}

	for name := range args {
		if _, ok := declared[name]; !ok {
			bad = append(bad, name)
		}
	}

	if len(bad) > 0 {
		sort.Strings(bad)

		return nil, toolerr.Newf(toolerr.KindInvalidArguments, "invalid arguments for %s: %s", t.Name, strings.Join(bad, ", "))
	}

	return checked, nil
}

// coerce converts a decoded JSON value to the declared parameter type.
// JSON decoding yields float64 for every number, so integers are recovered
// from whole floats; strings are never implicitly parsed into numbers.
func coerce(t ParamType, v any) (any, bool) {
	switch t {
	case TypeString:
		s, ok := v.(string)

		return s, ok
	case TypeNumber:
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case json.Number:
			f, err := n.Float64()

			return f, err == nil
		}

		return nil, false
	case TypeInteger:
		switch n := v.(type) {
		case int:
			return n, true
		case float64:
			if n == math.Trunc(n) {
				return int(n), true
			}
		case json.Number:
			i, err := n.Int64()
			if err == nil {
				return int(i), true
			}
		}

		return nil, false
	case TypeBoolean:
		b, ok := v.(bool)

		return b, ok
	}

	return nil, false
}
