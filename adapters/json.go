package adapters

import (
	"bytes"
	"encoding/json"
)

// jsonResponse serves as a wrapper around the json response
// to pretty-print the return values
type jsonResponse struct {
	value []byte
}

func newJSONResponse(val []byte) *jsonResponse {
	return &jsonResponse{
		value: val,
	}
}

func (j *jsonResponse) String() string {
	var parsed bytes.Buffer
	err := json.Indent(&parsed, j.value, "", "  ")
	if err != nil {
		return string(j.value)
	}
	return parsed.String()
}

func (j *jsonResponse) MarshalJSON() ([]byte, error) {
	if json.Valid(j.value) {
		return j.value, nil
	}

	return json.Marshal(j.value)
}
