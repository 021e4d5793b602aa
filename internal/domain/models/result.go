package models

// Result is the record produced by one processing pass.
//
// Fields:
//   - CustoInt: total internal cost.
//   - CustoExt: total external cost.
//   - EffFinal: the "efficient" records, rendered unchanged.
//
// A Result is built fresh on each pass and discarded after display.
type Result struct {
	CustoInt float64
	CustoExt float64
	EffFinal Table
}

// Outcome is either a complete Result or the absence of one.
//
// It replaces a nil sentinel: callers must ask for the result explicitly,
// and an absent outcome never carries a partially-populated record.
type Outcome struct {
	result *Result
	reason string
}

// Present wraps a complete result.
func Present(r Result) Outcome {
	return Outcome{result: &r}
}

// Absent signals that no valid result could be produced.
// reason is diagnostic only.
func Absent(reason string) Outcome {
	return Outcome{reason: reason}
}

// Result returns the record and true when present.
func (o Outcome) Result() (*Result, bool) {
	if o.result == nil {
		return nil, false
	}
	r := *o.result
	return &r, true
}

// IsPresent reports whether the outcome holds a result.
func (o Outcome) IsPresent() bool {
	return o.result != nil
}

// Reason returns why the outcome is absent ("" when present).
func (o Outcome) Reason() string {
	return o.reason
}
