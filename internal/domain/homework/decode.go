package homework

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedResponse is returned when a status API body does not match the
// expected shape.
var ErrMalformedResponse = errors.New("malformed status response")

// Decode reads one status API response. The body must be a JSON object;
// "homeworks", when present, must be a list of records and "current_date",
// when present, a non-negative integer. Nothing but whitespace may follow the
// object.
func Decode(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)
	var snap *Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after the JSON object", ErrMalformedResponse)
	}
	if snap == nil {
		return nil, fmt.Errorf("%w: body is null", ErrMalformedResponse)
	}
	if snap.CurrentDate != nil && *snap.CurrentDate < 0 {
		return nil, fmt.Errorf("%w: negative current_date %d", ErrMalformedResponse, *snap.CurrentDate)
	}
	return snap, nil
}
