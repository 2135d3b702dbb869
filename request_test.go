package fmxml

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsOf(opts ...RequestOption) []param {
	return newRequest(opts).params
}

func TestRequest_CriterionRoundTrip(t *testing.T) {
	encoded := encodeParams(paramsOf(WithFieldOp("field", "value", OpBeginsWith)))

	// The operator qualifier must directly follow its field.
	pairs := strings.Split(encoded, "&")
	require.Equal(t, []string{"field=value", "field.op=bw"}, pairs)

	decoded, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	assert.Equal(t, "value", decoded.Get("field"))
	assert.Equal(t, "bw", decoded.Get("field.op"))
}

func TestRequest_FieldWithoutOperator(t *testing.T) {
	params := paramsOf(WithField("FIRST", "John"))

	require.Len(t, params, 1)
	assert.Equal(t, param{"FIRST", "John"}, params[0])
}

func TestRequest_Fields(t *testing.T) {
	params := paramsOf(WithFields(
		FieldValue{Field: "FIRST", Value: "John"},
		FieldValue{Field: "LAST", Value: "Doe"},
	))

	assert.Equal(t, []param{{"FIRST", "John"}, {"LAST", "Doe"}}, params)
}

func TestRequest_Sort(t *testing.T) {
	params := paramsOf(
		WithSort("LAST", SortAscend, 1),
		WithSort("FIRST", SortDescend, 2),
		WithSort("STATE", SortByValueList("Regions"), 3),
	)

	assert.Equal(t, []param{
		{"-sortfield.1", "LAST"},
		{"-sortorder.1", "ascend"},
		{"-sortfield.2", "FIRST"},
		{"-sortorder.2", "descend"},
		{"-sortfield.3", "STATE"},
		{"-sortorder.3", "Regions"},
	}, params)
}

func TestRequest_Scripts(t *testing.T) {
	tests := []struct {
		name string
		opt  RequestOption
		want param
	}{
		{"after find and sort", WithScript("tally"), param{"-script", "tally"}},
		{"before find", WithPrefindScript("tally"), param{"-script.prefind", "tally"}},
		{"before sort", WithPresortScript("tally"), param{"-script.presort", "tally"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := paramsOf(tt.opt)
			require.Len(t, params, 1)
			assert.Equal(t, tt.want, params[0])
		})
	}
}

func TestRequest_RecordTargeting(t *testing.T) {
	params := paramsOf(WithRecordID(7), WithModID(2))

	assert.Equal(t, []param{{"-recid", "7"}, {"-modid", "2"}}, params)
}

func TestRequest_LogicalOr(t *testing.T) {
	params := paramsOf(WithLogicalOr())

	assert.Equal(t, []param{{"-lop", "or"}}, params)
}

func TestRequest_SkipZeroOmitted(t *testing.T) {
	assert.Empty(t, paramsOf(WithSkip(0)))
	assert.Equal(t, []param{{"-skip", "10"}}, paramsOf(WithSkip(10)))
}

func TestRequest_OptionOrderIsWireOrder(t *testing.T) {
	encoded := encodeParams(paramsOf(
		WithLogicalOr(),
		WithField("FIRST", "John"),
		WithFieldOp("LAST", "Doe", OpEquals),
		WithSkip(10),
	))

	assert.Equal(t, "-lop=or&FIRST=John&LAST=Doe&LAST.op=eq&-skip=10", encoded)
}

func TestEncodeParams_Escaping(t *testing.T) {
	encoded := encodeParams([]param{{"-lay", "data entry"}, {"NOTE", "a&b=c"}})

	assert.Equal(t, "-lay=data+entry&NOTE=a%26b%3Dc", encoded)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "Doe", "Doe"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 3.14, "3.14"},
		{"bool true", true, "1"},
		{"bool false", false, "0"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value))
		})
	}
}
