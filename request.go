package fmxml

import (
	"fmt"
	"net/url"
	"strconv"
)

// action is the trailing directive that selects the server-side command.
type action string

const (
	actionFind    action = "-find"
	actionFindAll action = "-findall"
	actionNew     action = "-new"
	actionEdit    action = "-edit"
	actionDelete  action = "-delete"
)

// Operator compares a search criterion against field contents.
type Operator string

// Field-level comparison operators. The server default is begins-with.
const (
	OpEquals         Operator = "eq"
	OpContains       Operator = "cn"
	OpBeginsWith     Operator = "bw"
	OpEndsWith       Operator = "ew"
	OpGreaterThan    Operator = "gt"
	OpGreaterOrEqual Operator = "gte"
	OpLessThan       Operator = "lt"
	OpLessOrEqual    Operator = "lte"
	OpNotEqual       Operator = "neq"
)

// SortOrder defines the sort direction for a sort criterion.
type SortOrder string

const (
	// SortAscend sorts in ascending order.
	SortAscend SortOrder = "ascend"
	// SortDescend sorts in descending order.
	SortDescend SortOrder = "descend"
)

// SortByValueList sorts by the order of a named value list defined on
// the server.
func SortByValueList(name string) SortOrder {
	return SortOrder(name)
}

// FieldValue is a single field assignment or search criterion.
type FieldValue struct {
	Field string
	Value any
}

// param is one ordered key/value pair of the request body. The wire
// format is order-sensitive: an operator qualifier must directly follow
// its field, and the action directive terminates the body.
type param struct {
	key   string
	value string
}

// request collects the one-shot parameters for a single action. It is
// built fresh on every action call and consumed exactly once, so no
// parameter state survives a submission.
type request struct {
	params     []param
	maxRecords *int
}

// RequestOption appends parameters to a single action request.
// Options are applied in call order, which defines their wire order.
type RequestOption func(*request)

// newRequest applies the options into a fresh parameter set.
func newRequest(opts []RequestOption) *request {
	req := &request{}
	for _, opt := range opts {
		opt(req)
	}

	return req
}

func (r *request) append(key, value string) {
	r.params = append(r.params, param{key: key, value: value})
}

// WithField adds a field value, used as update data for new/edit actions
// or as a search criterion with the default begins-with comparison.
func WithField(field string, value any) RequestOption {
	return func(r *request) {
		r.append(field, formatValue(value))
	}
}

// WithFieldOp adds a search criterion with an explicit comparison
// operator.
func WithFieldOp(field string, value any, op Operator) RequestOption {
	return func(r *request) {
		r.append(field, formatValue(value))
		r.append(field+".op", string(op))
	}
}

// WithFields adds multiple field values with the default comparison.
func WithFields(values ...FieldValue) RequestOption {
	return func(r *request) {
		for _, fv := range values {
			r.append(fv.Field, formatValue(fv.Value))
		}
	}
}

// WithSort adds a sort criterion. Lower priorities sort first.
func WithSort(field string, order SortOrder, priority int) RequestOption {
	return func(r *request) {
		n := strconv.Itoa(priority)
		r.append("-sortfield."+n, field)
		r.append("-sortorder."+n, string(order))
	}
}

// WithScript runs the named script after the find and sort phases.
func WithScript(name string) RequestOption {
	return func(r *request) {
		r.append("-script", name)
	}
}

// WithPrefindScript runs the named script before the find phase.
func WithPrefindScript(name string) RequestOption {
	return func(r *request) {
		r.append("-script.prefind", name)
	}
}

// WithPresortScript runs the named script after the find phase but
// before sorting.
func WithPresortScript(name string) RequestOption {
	return func(r *request) {
		r.append("-script.presort", name)
	}
}

// WithRecordID targets the record to edit or delete.
func WithRecordID(id int) RequestOption {
	return func(r *request) {
		r.append("-recid", strconv.Itoa(id))
	}
}

// WithModID supplies the expected modification stamp of the targeted
// record. The server rejects the action with error 306 when the stored
// record has changed since the stamp was read.
func WithModID(id int) RequestOption {
	return func(r *request) {
		r.append("-modid", strconv.Itoa(id))
	}
}

// WithLogicalOr combines multiple search criteria disjunctively instead
// of the default conjunctive matching.
func WithLogicalOr() RequestOption {
	return func(r *request) {
		r.append("-lop", "or")
	}
}

// WithSkip skips the first n matching records. A zero skip is omitted
// from the request.
func WithSkip(n int) RequestOption {
	return func(r *request) {
		if n != 0 {
			r.append("-skip", strconv.Itoa(n))
		}
	}
}

// WithMax overrides the client's page size for this request only.
func WithMax(n int) RequestOption {
	return func(r *request) {
		r.maxRecords = &n
	}
}

// encodeParams form-encodes the pairs preserving their order.
// url.Values cannot be used here: it is map-backed and would lose both
// ordering and the field/operator adjacency the wire format requires.
func encodeParams(params []param) string {
	var b []byte
	for i, p := range params {
		if i > 0 {
			b = append(b, '&')
		}
		b = append(b, url.QueryEscape(p.key)...)
		b = append(b, '=')
		b = append(b, url.QueryEscape(p.value)...)
	}

	return string(b)
}

// formatValue converts a Go value to its form-encoded representation.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
