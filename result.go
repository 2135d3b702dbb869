package fmxml

import (
	"encoding/xml"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// FieldType is the declared type of a layout field.
//
// The XML grammar publishes every field value as element text, so the
// type only carries schema information; unknown declared types fold to
// FieldTypeText.
type FieldType int

const (
	FieldTypeText FieldType = iota
	FieldTypeNumber
	FieldTypeDate
	FieldTypeTime
	FieldTypeTimestamp
	FieldTypeContainer
	FieldTypeCalculation
	FieldTypeSummary
)

// fieldTypes maps declared TYPE attributes to the closed FieldType set.
var fieldTypes = map[string]FieldType{
	"TEXT":        FieldTypeText,
	"NUMBER":      FieldTypeNumber,
	"DATE":        FieldTypeDate,
	"TIME":        FieldTypeTime,
	"TIMESTAMP":   FieldTypeTimestamp,
	"CONTAINER":   FieldTypeContainer,
	"CALCULATION": FieldTypeCalculation,
	"SUMMARY":     FieldTypeSummary,
}

var fieldTypeNames = map[FieldType]string{
	FieldTypeText:        "TEXT",
	FieldTypeNumber:      "NUMBER",
	FieldTypeDate:        "DATE",
	FieldTypeTime:        "TIME",
	FieldTypeTimestamp:   "TIMESTAMP",
	FieldTypeContainer:   "CONTAINER",
	FieldTypeCalculation: "CALCULATION",
	FieldTypeSummary:     "SUMMARY",
}

// fieldTypeOf returns the FieldType for a declared TYPE attribute,
// folding unknown tags to FieldTypeText.
func fieldTypeOf(tag string) FieldType {
	if t, ok := fieldTypes[tag]; ok {
		return t
	}

	return FieldTypeText
}

// String returns the declared TYPE attribute for the field type.
func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}

	return "TEXT"
}

// converter returns the value decoder for this field type. All types in
// the grammar publish text, so the decoder differs only in whether the
// XHTML escape transform is applied.
func (t FieldType) converter(escape bool) func(string) string {
	if escape {
		return escapeToASCII
	}

	return func(s string) string { return s }
}

// Field describes one field of the result schema.
type Field struct {
	// Name is the field name on the layout.
	Name string

	// Type is the declared field type.
	Type FieldType

	// EmptyOK reports whether the field may be left empty.
	EmptyOK bool

	// MaxRepeat is the number of repetitions defined for the field.
	// 1 means scalar; greater values mean an array-valued field.
	MaxRepeat int
}

// Record is a single decoded result row.
type Record struct {
	// RecordID is the server-assigned record identifier, required to
	// target edit and delete actions.
	RecordID int

	// ModID is the record's modification stamp, used for
	// optimistic-concurrency checks on edit.
	ModID int

	// Values maps field names to decoded values: a string, nil for an
	// empty scalar, or a []string for a repeating field.
	Values map[string]any
}

// Result is a fully decoded FMPXMLRESULT response.
type Result struct {
	// ErrorCode is the embedded status code; always 0 for a Result
	// returned to the caller.
	ErrorCode int

	// Product holds the PRODUCT element attributes (engine name,
	// version, build).
	Product map[string]string

	// Database holds the DATABASE element attributes (name, layout,
	// record count, date and time formats).
	Database map[string]string

	// Fields is the result schema in layout order.
	Fields []Field

	// Records are the decoded rows.
	Records []Record

	// URL is the effective request URL including the encoded body.
	URL string

	// Header carries the raw response headers.
	Header http.Header
}

// xmlElement is a generic navigable XML tree node.
type xmlElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Children []xmlElement `xml:",any"`
	Text     string       `xml:",chardata"`
}

// attrMap flattens the element attributes into a map.
func (e *xmlElement) attrMap() map[string]string {
	m := make(map[string]string, len(e.Attrs))
	for _, a := range e.Attrs {
		m[a.Name.Local] = a.Value
	}

	return m
}

// attr returns the named attribute value and whether it was present.
func (e *xmlElement) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

// intAttr returns the named attribute parsed as an integer.
func (e *xmlElement) intAttr(name string) (int, error) {
	raw, ok := e.attr(name)
	if !ok {
		return 0, &ResponseError{Reason: "element " + e.XMLName.Local + " is missing attribute " + name}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ResponseError{Reason: "attribute " + name + " of " + e.XMLName.Local + " is not an integer", Err: err}
	}

	return n, nil
}

// resultChildren is the fixed positional layout of an FMPXMLRESULT
// document. The document shape is validated against it before decoding.
var resultChildren = [5]string{"ERRORCODE", "PRODUCT", "DATABASE", "METADATA", "RESULTSET"}

// decode parses and validates an FMPXMLRESULT document and fills the
// result. A nonzero embedded status code is returned as a *ServerError;
// structural deviations are returned as *ResponseError.
func (r *Result) decode(body io.Reader, escape bool) error {
	var root xmlElement
	if err := xml.NewDecoder(body).Decode(&root); err != nil {
		return &ResponseError{Reason: "parsing response document", Err: err}
	}

	if err := validateShape(&root); err != nil {
		return err
	}

	// A present but unparsable status code maps to the unknown-error
	// sentinel rather than a decode failure.
	code, err := strconv.Atoi(strings.TrimSpace(root.Children[0].Text))
	if err != nil {
		code = -1
	}
	r.ErrorCode = code
	if code != 0 {
		return &ServerError{Code: code}
	}

	r.Product = root.Children[1].attrMap()
	r.Database = root.Children[2].attrMap()

	fields, err := decodeMetadata(&root.Children[3])
	if err != nil {
		return err
	}
	r.Fields = fields

	records, err := decodeResultSet(&root.Children[4], fields, escape)
	if err != nil {
		return err
	}
	r.Records = records

	return nil
}

// validateShape checks the fixed positional contract of the document
// before any decoding happens.
func validateShape(root *xmlElement) error {
	if len(root.Children) < len(resultChildren) {
		return &ResponseError{Reason: "document has " + strconv.Itoa(len(root.Children)) +
			" child elements, want " + strconv.Itoa(len(resultChildren))}
	}

	for i, want := range resultChildren {
		if got := root.Children[i].XMLName.Local; got != want {
			return &ResponseError{Reason: "child " + strconv.Itoa(i) + " is " + got + ", want " + want}
		}
	}

	return nil
}

// decodeMetadata turns the METADATA element into the ordered result
// schema.
func decodeMetadata(metadata *xmlElement) ([]Field, error) {
	fields := make([]Field, 0, len(metadata.Children))

	for i := range metadata.Children {
		el := &metadata.Children[i]

		name, ok := el.attr("NAME")
		if !ok {
			return nil, &ResponseError{Reason: "metadata field " + strconv.Itoa(i) + " has no NAME attribute"}
		}

		maxRepeat, err := el.intAttr("MAXREPEAT")
		if err != nil {
			return nil, err
		}

		declared, _ := el.attr("TYPE")
		emptyOK, _ := el.attr("EMPTYOK")

		fields = append(fields, Field{
			Name:      name,
			Type:      fieldTypeOf(declared),
			EmptyOK:   emptyOK == "YES",
			MaxRepeat: maxRepeat,
		})
	}

	return fields, nil
}

// decodeResultSet turns the RESULTSET element into decoded records.
// Columns are matched positionally against the schema.
func decodeResultSet(resultset *xmlElement, fields []Field, escape bool) ([]Record, error) {
	records := make([]Record, 0, len(resultset.Children))

	for i := range resultset.Children {
		row := &resultset.Children[i]

		recordID, err := row.intAttr("RECORDID")
		if err != nil {
			return nil, err
		}
		modID, err := row.intAttr("MODID")
		if err != nil {
			return nil, err
		}

		record := Record{
			RecordID: recordID,
			ModID:    modID,
			Values:   make(map[string]any, len(fields)),
		}

		cols := row.Children
		for j := range fields {
			if j >= len(cols) {
				break
			}
			field := &fields[j]
			record.Values[field.Name] = decodeColumn(&cols[j], field, escape)
		}

		records = append(records, record)
	}

	return records, nil
}

// decodeColumn decodes one COL element according to the field's
// repetition count.
func decodeColumn(col *xmlElement, field *Field, escape bool) any {
	convert := field.Type.converter(escape)

	if field.MaxRepeat == 1 {
		if len(col.Children) == 0 || col.Children[0].Text == "" {
			return nil
		}

		return convert(col.Children[0].Text)
	}

	// Repeating field: collect until the first empty repetition. A gap
	// terminates the sequence rather than being skipped.
	values := []string{}
	for k := range col.Children {
		text := col.Children[k].Text
		if text == "" {
			break
		}
		values = append(values, convert(text))
	}

	return values
}
