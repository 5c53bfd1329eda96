package req

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Decode - decodes a JSON request body into T.
// Unknown fields are rejected so that client typos surface as 400s
func Decode[T any](body io.Reader) (T, error) {
	var payload T

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&payload); err != nil {
		return payload, fmt.Errorf("decode request: %w", err)
	}

	return payload, nil
}

// Pagination - limit/offset query params. Negative or malformed values
// collapse to zero so they cannot wrap when cast to uint64 at the query
// builder
func Pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
