/*
Copyright 2026 the PetFriends Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/petfriends-qa/api-tests/pkg/openapi"
)

var ErrNotJSON = errors.New("response body is not JSON")

// maxDescribedBody bounds how much of a body ends up in assertion messages.
const maxDescribedBody = 512

// Response is the normalized result of an API call.  A response is returned
// for every status code, callers decide what counts as failure.
type Response struct {
	// StatusCode is the HTTP status.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// Raw is the unparsed body.
	Raw []byte
	// Body is the parsed JSON value, or the raw text when the body is not JSON.
	Body any
	// TraceID correlates the request with server logs.
	TraceID string
	// ContractError is set when response validation is enabled and the
	// response does not conform to the API document.
	ContractError error

	isJSON bool
}

func newResponse(statusCode int, header http.Header, raw []byte, traceID string) *Response {
	response := &Response{
		StatusCode: statusCode,
		Header:     header,
		Raw:        raw,
		Body:       string(raw),
		TraceID:    traceID,
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return response
	}

	var parsed any
	if err := json.Unmarshal(trimmed, &parsed); err == nil {
		response.Body = parsed
		response.isJSON = true
	}

	return response
}

// IsJSON reports whether the body was parsed as JSON.
func (r *Response) IsJSON() bool {
	return r.isJSON
}

// Object returns the body as a JSON object, or nil if it is not one.
func (r *Response) Object() map[string]interface{} {
	object, _ := r.Body.(map[string]interface{})

	return object
}

// Key returns the auth key carried by the body, or an empty string.
func (r *Response) Key() string {
	var key openapi.AuthKey
	if err := r.decode(&key); err != nil {
		return ""
	}

	return key.Key
}

// Pet decodes the body as a pet record.
func (r *Response) Pet() (*openapi.Pet, error) {
	var pet openapi.Pet
	if err := r.decode(&pet); err != nil {
		return nil, fmt.Errorf("decoding pet: %w", err)
	}

	return &pet, nil
}

// Pets decodes the body as a pet listing.
func (r *Response) Pets() ([]openapi.Pet, error) {
	var list openapi.PetList
	if err := r.decode(&list); err != nil {
		return nil, fmt.Errorf("decoding pet list: %w", err)
	}

	return list.Pets, nil
}

func (r *Response) decode(out any) error {
	if !r.isJSON {
		return ErrNotJSON
	}

	return json.Unmarshal(r.Raw, out)
}

// String describes the response for assertion messages.
func (r *Response) String() string {
	body := string(r.Raw)
	if len(body) > maxDescribedBody {
		body = body[:maxDescribedBody] + "..."
	}

	return fmt.Sprintf("status=%d body=%s (trace ID: %s)", r.StatusCode, body, r.TraceID)
}
