package fmxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFixture(t *testing.T, doc string, escape bool) (*Result, error) {
	t.Helper()

	result := &Result{}
	err := result.decode(strings.NewReader(doc), escape)

	return result, err
}

func TestResult_Decode(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<FMPXMLRESULT xmlns="http://www.filemaker.com/fmpxmlresult">
  <ERRORCODE>0</ERRORCODE>
  <PRODUCT BUILD="06/14/2006" NAME="FileMaker Web Publishing Engine" VERSION="8.0.4.128"/>
  <DATABASE DATEFORMAT="MM/dd/yyyy" LAYOUT="data entry" NAME="Test" RECORDS="68" TIMEFORMAT="HH:mm:ss"/>
  <METADATA>
    <FIELD EMPTYOK="YES" MAXREPEAT="1" NAME="FIRST" TYPE="TEXT"/>
    <FIELD EMPTYOK="NO" MAXREPEAT="1" NAME="AGE" TYPE="NUMBER"/>
  </METADATA>
  <RESULTSET FOUND="2">
    <ROW MODID="2" RECORDID="7">
      <COL><DATA>John</DATA></COL>
      <COL><DATA>42</DATA></COL>
    </ROW>
    <ROW MODID="0" RECORDID="8">
      <COL><DATA/></COL>
      <COL><DATA>17</DATA></COL>
    </ROW>
  </RESULTSET>
</FMPXMLRESULT>`

	result, err := decodeFixture(t, doc, false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.ErrorCode)
	assert.Equal(t, map[string]string{
		"BUILD":   "06/14/2006",
		"NAME":    "FileMaker Web Publishing Engine",
		"VERSION": "8.0.4.128",
	}, result.Product)
	assert.Equal(t, "data entry", result.Database["LAYOUT"])
	assert.Equal(t, "68", result.Database["RECORDS"])

	require.Len(t, result.Fields, 2)
	assert.Equal(t, Field{Name: "FIRST", Type: FieldTypeText, EmptyOK: true, MaxRepeat: 1}, result.Fields[0])
	assert.Equal(t, Field{Name: "AGE", Type: FieldTypeNumber, EmptyOK: false, MaxRepeat: 1}, result.Fields[1])

	require.Len(t, result.Records, 2)
	assert.Equal(t, 7, result.Records[0].RecordID)
	assert.Equal(t, 2, result.Records[0].ModID)
	assert.Equal(t, "John", result.Records[0].Values["FIRST"])
	assert.Equal(t, "42", result.Records[0].Values["AGE"])

	// An empty DATA element decodes to an absent scalar.
	assert.Nil(t, result.Records[1].Values["FIRST"])
	assert.Equal(t, "17", result.Records[1].Values["AGE"])
}

func TestResult_Decode_RepeatingFieldGapTerminates(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<FMPXMLRESULT xmlns="http://www.filemaker.com/fmpxmlresult">
  <ERRORCODE>0</ERRORCODE>
  <PRODUCT NAME="FileMaker Web Publishing Engine" VERSION="8.0.4.128"/>
  <DATABASE LAYOUT="data entry" NAME="Test" RECORDS="1"/>
  <METADATA>
    <FIELD EMPTYOK="YES" MAXREPEAT="3" NAME="PHONE" TYPE="TEXT"/>
  </METADATA>
  <RESULTSET FOUND="1">
    <ROW MODID="1" RECORDID="1">
      <COL><DATA>555-0100</DATA><DATA>555-0101</DATA><DATA/></COL>
    </ROW>
  </RESULTSET>
</FMPXMLRESULT>`

	result, err := decodeFixture(t, doc, false)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	// Three repetitions declared, two carry text: the empty one stops
	// collection.
	assert.Equal(t, []string{"555-0100", "555-0101"}, result.Records[0].Values["PHONE"])
}

func TestResult_Decode_RepeatingFieldGapInMiddle(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<FMPXMLRESULT xmlns="http://www.filemaker.com/fmpxmlresult">
  <ERRORCODE>0</ERRORCODE>
  <PRODUCT NAME="FileMaker Web Publishing Engine" VERSION="8.0.4.128"/>
  <DATABASE LAYOUT="data entry" NAME="Test" RECORDS="1"/>
  <METADATA>
    <FIELD EMPTYOK="YES" MAXREPEAT="3" NAME="PHONE" TYPE="TEXT"/>
  </METADATA>
  <RESULTSET FOUND="1">
    <ROW MODID="1" RECORDID="1">
      <COL><DATA>555-0100</DATA><DATA/><DATA>555-0102</DATA></COL>
    </ROW>
  </RESULTSET>
</FMPXMLRESULT>`

	result, err := decodeFixture(t, doc, false)
	require.NoError(t, err)

	// A gap terminates the sequence; repetitions after it are dropped.
	assert.Equal(t, []string{"555-0100"}, result.Records[0].Values["PHONE"])
}

func TestResult_Decode_NonIntegerStatusCode(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<FMPXMLRESULT xmlns="http://www.filemaker.com/fmpxmlresult">
  <ERRORCODE>garbled</ERRORCODE>
  <PRODUCT NAME="FileMaker Web Publishing Engine" VERSION="8.0.4.128"/>
  <DATABASE LAYOUT="data entry" NAME="Test" RECORDS="0"/>
  <METADATA/>
  <RESULTSET FOUND="0"/>
</FMPXMLRESULT>`

	result, err := decodeFixture(t, doc, false)

	require.Error(t, err)
	assert.Equal(t, -1, result.ErrorCode)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, -1, serverErr.Code)
	assert.Equal(t, "FileMaker Error -1: Unknown error", err.Error())
}

func TestResult_Decode_UnknownFieldTypeFoldsToText(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<FMPXMLRESULT xmlns="http://www.filemaker.com/fmpxmlresult">
  <ERRORCODE>0</ERRORCODE>
  <PRODUCT NAME="FileMaker Web Publishing Engine" VERSION="8.0.4.128"/>
  <DATABASE LAYOUT="data entry" NAME="Test" RECORDS="0"/>
  <METADATA>
    <FIELD EMPTYOK="YES" MAXREPEAT="1" NAME="X" TYPE="HOLOGRAM"/>
  </METADATA>
  <RESULTSET FOUND="0"/>
</FMPXMLRESULT>`

	result, err := decodeFixture(t, doc, false)
	require.NoError(t, err)
	require.Len(t, result.Fields, 1)
	assert.Equal(t, FieldTypeText, result.Fields[0].Type)
}

func TestResult_Decode_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		reason string
	}{
		{
			name:   "not xml",
			doc:    "500 Internal Server Error",
			reason: "parsing response document",
		},
		{
			name: "too few children",
			doc: `<FMPXMLRESULT><ERRORCODE>0</ERRORCODE><PRODUCT/><DATABASE/></FMPXMLRESULT>`,
			reason: "child elements",
		},
		{
			name: "children out of order",
			doc: `<FMPXMLRESULT><PRODUCT/><ERRORCODE>0</ERRORCODE><DATABASE/><METADATA/><RESULTSET/></FMPXMLRESULT>`,
			reason: "child 0 is PRODUCT, want ERRORCODE",
		},
		{
			name: "row missing record id",
			doc: `<FMPXMLRESULT><ERRORCODE>0</ERRORCODE><PRODUCT/><DATABASE/><METADATA>
				<FIELD EMPTYOK="YES" MAXREPEAT="1" NAME="X" TYPE="TEXT"/>
			</METADATA><RESULTSET><ROW MODID="1"><COL><DATA>x</DATA></COL></ROW></RESULTSET></FMPXMLRESULT>`,
			reason: "missing attribute RECORDID",
		},
		{
			name: "row with non-integer mod id",
			doc: `<FMPXMLRESULT><ERRORCODE>0</ERRORCODE><PRODUCT/><DATABASE/><METADATA>
				<FIELD EMPTYOK="YES" MAXREPEAT="1" NAME="X" TYPE="TEXT"/>
			</METADATA><RESULTSET><ROW MODID="two" RECORDID="7"><COL><DATA>x</DATA></COL></ROW></RESULTSET></FMPXMLRESULT>`,
			reason: "attribute MODID of ROW is not an integer",
		},
		{
			name: "metadata field without name",
			doc: `<FMPXMLRESULT><ERRORCODE>0</ERRORCODE><PRODUCT/><DATABASE/><METADATA>
				<FIELD EMPTYOK="YES" MAXREPEAT="1" TYPE="TEXT"/>
			</METADATA><RESULTSET/></FMPXMLRESULT>`,
			reason: "has no NAME attribute",
		},
		{
			name: "metadata field with bad maxrepeat",
			doc: `<FMPXMLRESULT><ERRORCODE>0</ERRORCODE><PRODUCT/><DATABASE/><METADATA>
				<FIELD EMPTYOK="YES" MAXREPEAT="many" NAME="X" TYPE="TEXT"/>
			</METADATA><RESULTSET/></FMPXMLRESULT>`,
			reason: "MAXREPEAT of FIELD is not an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeFixture(t, tt.doc, false)

			var respErr *ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestResult_Decode_MoreColumnsThanFields(t *testing.T) {
	// Extra columns beyond the schema are ignored, matching the
	// positional zip of metadata and row children.
	doc := `<FMPXMLRESULT><ERRORCODE>0</ERRORCODE><PRODUCT/><DATABASE/><METADATA>
		<FIELD EMPTYOK="YES" MAXREPEAT="1" NAME="X" TYPE="TEXT"/>
	</METADATA><RESULTSET><ROW MODID="1" RECORDID="1">
		<COL><DATA>a</DATA></COL><COL><DATA>b</DATA></COL>
	</ROW></RESULTSET></FMPXMLRESULT>`

	result, err := decodeFixture(t, doc, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"X": "a"}, result.Records[0].Values)
}

func TestResult_Decode_FewerColumnsThanFields(t *testing.T) {
	doc := `<FMPXMLRESULT><ERRORCODE>0</ERRORCODE><PRODUCT/><DATABASE/><METADATA>
		<FIELD EMPTYOK="YES" MAXREPEAT="1" NAME="X" TYPE="TEXT"/>
		<FIELD EMPTYOK="YES" MAXREPEAT="1" NAME="Y" TYPE="TEXT"/>
	</METADATA><RESULTSET><ROW MODID="1" RECORDID="1">
		<COL><DATA>a</DATA></COL>
	</ROW></RESULTSET></FMPXMLRESULT>`

	result, err := decodeFixture(t, doc, false)
	require.NoError(t, err)
	assert.Equal(t, "a", result.Records[0].Values["X"])
	assert.NotContains(t, result.Records[0].Values, "Y")
}

func TestResult_Decode_ColumnWithoutData(t *testing.T) {
	doc := `<FMPXMLRESULT><ERRORCODE>0</ERRORCODE><PRODUCT/><DATABASE/><METADATA>
		<FIELD EMPTYOK="YES" MAXREPEAT="1" NAME="X" TYPE="TEXT"/>
	</METADATA><RESULTSET><ROW MODID="1" RECORDID="1"><COL/></ROW></RESULTSET></FMPXMLRESULT>`

	result, err := decodeFixture(t, doc, false)
	require.NoError(t, err)
	assert.Nil(t, result.Records[0].Values["X"])
}

func TestResult_Decode_EscapedValues(t *testing.T) {
	doc := `<FMPXMLRESULT><ERRORCODE>0</ERRORCODE><PRODUCT/><DATABASE/><METADATA>
		<FIELD EMPTYOK="YES" MAXREPEAT="1" NAME="NOTE" TYPE="TEXT"/>
		<FIELD EMPTYOK="YES" MAXREPEAT="2" NAME="TAGS" TYPE="TEXT"/>
	</METADATA><RESULTSET><ROW MODID="1" RECORDID="1">
		<COL><DATA>x &lt; y &amp; 'z'</DATA></COL>
		<COL><DATA>caf&#233;</DATA><DATA>na&#239;ve</DATA></COL>
	</ROW></RESULTSET></FMPXMLRESULT>`

	result, err := decodeFixture(t, doc, true)
	require.NoError(t, err)

	rec := result.Records[0]
	assert.Equal(t, "x &lt; y &amp; &#39;z&#39;", rec.Values["NOTE"])
	assert.Equal(t, []string{"caf&#233;", "na&#239;ve"}, rec.Values["TAGS"])
}

func TestFieldType_String(t *testing.T) {
	assert.Equal(t, "TEXT", FieldTypeText.String())
	assert.Equal(t, "NUMBER", FieldTypeNumber.String())
	assert.Equal(t, "CALCULATION", FieldTypeCalculation.String())
}
