package receipt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	oerrors "github.com/cargocraft/cli/internal/errors"
)

// Format names a layout of the receipts log.
type Format string

// Layouts tried by Decode, in order.
const (
	FormatLines  Format = "json-lines"
	FormatObject Format = "whole-file object"
	FormatArray  Format = "whole-file array"
)

// Diagnostic explains why one layout could not decode the log.
type Diagnostic struct {
	Format Format

	// Line is the 1-based line that failed, for FormatLines only.
	Line int

	Err error
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: line %d: %v", d.Format, d.Line, d.Err)
	}
	return fmt.Sprintf("%s: %v", d.Format, d.Err)
}

// DecodeError is returned when no layout could decode the log.
type DecodeError struct {
	Diagnostics []Diagnostic
}

func (e *DecodeError) Error() string {
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = d.String()
	}
	return strings.Join(parts, "; ")
}

// Decode reads a receipts log. It tries one record per line first, then the
// whole file as a single record, then the whole file as an array of records.
// If all three fail it returns a JsonError wrapping a *DecodeError with one
// diagnostic per attempt.
func Decode(data []byte) ([]Receipt, Format, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, FormatLines, nil
	}

	var diags []Diagnostic
	state := FormatLines
	for {
		var (
			records []Receipt
			diag    *Diagnostic
		)

		switch state {
		case FormatLines:
			records, diag = decodeLines(data)
		case FormatObject:
			records, diag = decodeObject(data)
		case FormatArray:
			records, diag = decodeArray(data)
		}

		if diag == nil {
			return records, state, nil
		}
		diags = append(diags, *diag)

		switch state {
		case FormatLines:
			state = FormatObject
		case FormatObject:
			state = FormatArray
		default:
			return nil, "", oerrors.WithCause(oerrors.KindJSON, &DecodeError{Diagnostics: diags},
				"receipts log could not be decoded")
		}
	}
}

func decodeLines(data []byte) ([]Receipt, *Diagnostic) {
	var records []Receipt
	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		r, err := decodeRecord(line)
		if err != nil {
			return nil, &Diagnostic{Format: FormatLines, Line: i + 1, Err: err}
		}
		records = append(records, *r)
	}
	return records, nil
}

func decodeObject(data []byte) ([]Receipt, *Diagnostic) {
	r, err := decodeRecord(bytes.TrimSpace(data))
	if err != nil {
		return nil, &Diagnostic{Format: FormatObject, Err: err}
	}
	return []Receipt{*r}, nil
}

func decodeArray(data []byte) ([]Receipt, *Diagnostic) {
	fail := func(err error) ([]Receipt, *Diagnostic) {
		return nil, &Diagnostic{Format: FormatArray, Err: err}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fail(err)
	}
	items, ok := inst.([]any)
	if !ok {
		return fail(fmt.Errorf("top-level value is not an array"))
	}
	for i, item := range items {
		if err := validateInstance(item); err != nil {
			return fail(fmt.Errorf("element %d %w", i, err))
		}
	}

	var records []Receipt
	if err := json.Unmarshal(data, &records); err != nil {
		return fail(err)
	}
	return records, nil
}

func decodeRecord(data []byte) (*Receipt, error) {
	if err := validateJSON(data); err != nil {
		return nil, err
	}
	var r Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Encode writes records as JSON lines.
func Encode(records []Receipt) ([]byte, error) {
	var buf bytes.Buffer
	for i := range records {
		line, err := json.Marshal(&records[i])
		if err != nil {
			return nil, oerrors.WithCause(oerrors.KindSerialization, err, "encoding receipt")
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
