package main

import (
	"fmt"
	"strings"

	fmxml "github.com/tphakala/go-fmxml"
)

// operators holds the comparison suffixes accepted in FIELD=VALUE:op
// arguments.
var operators = map[string]fmxml.Operator{
	"eq":  fmxml.OpEquals,
	"cn":  fmxml.OpContains,
	"bw":  fmxml.OpBeginsWith,
	"ew":  fmxml.OpEndsWith,
	"gt":  fmxml.OpGreaterThan,
	"gte": fmxml.OpGreaterOrEqual,
	"lt":  fmxml.OpLessThan,
	"lte": fmxml.OpLessOrEqual,
	"neq": fmxml.OpNotEqual,
}

// criterion is one parsed FIELD=VALUE[:op] argument.
type criterion struct {
	field string
	value string
	op    fmxml.Operator
	hasOp bool
}

// parseCriterion splits a FIELD=VALUE[:op] argument. The operator
// suffix is only recognized when it names a known comparison, so values
// containing colons pass through unchanged.
func parseCriterion(arg string) (criterion, error) {
	field, rest, ok := strings.Cut(arg, "=")
	if !ok || field == "" {
		return criterion{}, fmt.Errorf("invalid criterion %q, want FIELD=VALUE[:op]", arg)
	}

	c := criterion{field: field, value: rest}

	if i := strings.LastIndex(rest, ":"); i >= 0 {
		if op, ok := operators[rest[i+1:]]; ok {
			c.value = rest[:i]
			c.op = op
			c.hasOp = true
		}
	}

	return c, nil
}

// parseCriteria converts FIELD=VALUE[:op] arguments to request options.
func parseCriteria(args []string) ([]fmxml.RequestOption, error) {
	opts := make([]fmxml.RequestOption, 0, len(args))

	for _, arg := range args {
		c, err := parseCriterion(arg)
		if err != nil {
			return nil, err
		}

		if c.hasOp {
			opts = append(opts, fmxml.WithFieldOp(c.field, c.value, c.op))
		} else {
			opts = append(opts, fmxml.WithField(c.field, c.value))
		}
	}

	return opts, nil
}

// parseSorts converts repeated --sort FIELD[:order] flags to request
// options. Priorities follow flag order; the order defaults to ascend
// and may name a server-defined value list.
func parseSorts(specs []string) ([]fmxml.RequestOption, error) {
	opts := make([]fmxml.RequestOption, 0, len(specs))

	for i, spec := range specs {
		field, order, ok := strings.Cut(spec, ":")
		if field == "" {
			return nil, fmt.Errorf("invalid sort %q, want FIELD[:order]", spec)
		}
		if !ok || order == "" {
			order = string(fmxml.SortAscend)
		}

		opts = append(opts, fmxml.WithSort(field, fmxml.SortOrder(order), i+1))
	}

	return opts, nil
}
