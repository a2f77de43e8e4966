/*
Copyright 2024-2025 the Unikorn Authors.
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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/petfriends-qa/api-tests/pkg/constants"
	"github.com/petfriends-qa/api-tests/pkg/openapi"
)

//go:generate go run go.uber.org/mock/mockgen -source=api_client.go -destination=mock/interfaces.go -package=mock

// Doer sends HTTP requests, *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIClient wraps the PetFriends REST API.  Calls return a Response for any
// status code and an error only when no response could be obtained.
type APIClient struct {
	baseURL   string
	client    Doer
	config    *TestConfig
	endpoints *Endpoints
	validator *openapi.ResponseValidator
}

func NewAPIClientWithConfig(config *TestConfig) (*APIClient, error) {
	return NewAPIClientWithDoer(config, &http.Client{
		Timeout: config.RequestTimeout,
	})
}

// NewAPIClientWithDoer allows the transport to be replaced, e.g. in tests.
func NewAPIClientWithDoer(config *TestConfig, doer Doer) (*APIClient, error) {
	client := &APIClient{
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		client:    doer,
		config:    config,
		endpoints: NewEndpoints(),
	}

	if config.ValidateResponses {
		validator, err := openapi.NewResponseValidator()
		if err != nil {
			return nil, fmt.Errorf("creating response validator: %w", err)
		}

		client.validator = validator
	}

	return client, nil
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logErrorWithStatus logs an error with HTTP status code.
func (c *APIClient) logErrorWithStatus(method, path string, duration time.Duration, statusCode int, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s status=%d traceparent=%s error=%v\n", method, path, context, duration, statusCode, traceParent, err)
	c.logTraceContext(traceParent)
}

// logContractViolation logs a response that does not match the API document.
func (c *APIClient) logContractViolation(method, path string, statusCode int, traceParent string, err error) {
	ginkgo.GinkgoWriter.Printf("[%s %s] CONTRACT VIOLATION status=%d traceparent=%s error=%v\n", method, path, statusCode, traceParent, err)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// logRequestHeaders logs outgoing headers with credentials redacted.
func (c *APIClient) logRequestHeaders(method, path string, header http.Header) {
	redacted := header.Clone()

	for _, key := range []string{constants.PasswordHeader, constants.AuthKeyHeader} {
		if redacted.Get(key) != "" {
			redacted.Set(key, "REDACTED")
		}
	}

	ginkgo.GinkgoWriter.Printf("[%s %s] request headers: %v\n", method, path, redacted)
}

// generateTraceID creates a new W3C trace ID.
// A new trace ID per request lets a failing request be found in the service logs.
func generateTraceID() string {
	id := make([]byte, 16)
	_, _ = rand.Read(id)

	return hex.EncodeToString(id)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	id := make([]byte, 8)
	_, _ = rand.Read(id)

	return hex.EncodeToString(id)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

func authHeader(authKey string) http.Header {
	header := http.Header{}
	header.Set(constants.AuthKeyHeader, authKey)

	return header
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, header http.Header, body *requestBody) (*Response, error) {
	fullURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}

	if c.config.DebugLogging {
		c.logRequestHeaders(method, path, req.Header)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, path, string(respBody))
	}

	response := newResponse(resp.StatusCode, resp.Header, respBody, extractTraceID(traceParent))

	if c.validator != nil {
		if err := c.validator.Validate(ctx, req, resp.StatusCode, resp.Header, respBody); err != nil {
			c.logContractViolation(method, path, resp.StatusCode, traceParent, err)
			response.ContractError = err
		}
	}

	return response, nil
}

// GetAPIKey requests an auth key for the given credentials.  On success the
// body carries a "key" field.
func (c *APIClient) GetAPIKey(ctx context.Context, email, password string) (*Response, error) {
	header := http.Header{}
	header.Set(constants.EmailHeader, email)
	header.Set(constants.PasswordHeader, password)

	response, err := c.doRequest(ctx, http.MethodGet, c.endpoints.GetAPIKey(), header, nil)
	if err != nil {
		return nil, fmt.Errorf("getting api key: %w", err)
	}

	return response, nil
}

// ListPets lists pets visible to the key holder.  The filter is passed to
// the service unchecked.
func (c *APIClient) ListPets(ctx context.Context, authKey string, filter openapi.PetFilter) (*Response, error) {
	response, err := c.doRequest(ctx, http.MethodGet, c.endpoints.ListPets(filter), authHeader(authKey), nil)
	if err != nil {
		return nil, fmt.Errorf("listing pets: %w", err)
	}

	return response, nil
}

// AddPet creates a pet with a photo read from photoPath.
func (c *APIClient) AddPet(ctx context.Context, authKey, name, animalType, age, photoPath string) (*Response, error) {
	body, err := encodeMultipart(petFields(name, animalType, age), "pet_photo", photoPath)
	if err != nil {
		return nil, fmt.Errorf("encoding pet: %w", err)
	}

	response, err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreatePet(), authHeader(authKey), body)
	if err != nil {
		return nil, fmt.Errorf("adding pet: %w", err)
	}

	return response, nil
}

// AddPetWithoutPhoto creates a pet, the request carries no photo field at all.
func (c *APIClient) AddPetWithoutPhoto(ctx context.Context, authKey, name, animalType, age string) (*Response, error) {
	body := encodeForm(petFields(name, animalType, age))

	response, err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreatePetSimple(), authHeader(authKey), body)
	if err != nil {
		return nil, fmt.Errorf("adding pet without photo: %w", err)
	}

	return response, nil
}

// SetPhoto attaches or replaces the photo of an existing pet.
func (c *APIClient) SetPhoto(ctx context.Context, authKey, petID, photoPath string) (*Response, error) {
	body, err := encodeMultipart(nil, "pet_photo", photoPath)
	if err != nil {
		return nil, fmt.Errorf("encoding photo: %w", err)
	}

	response, err := c.doRequest(ctx, http.MethodPost, c.endpoints.SetPetPhoto(petID), authHeader(authKey), body)
	if err != nil {
		return nil, fmt.Errorf("setting pet photo: %w", err)
	}

	return response, nil
}

// UpdatePet updates the descriptive fields of an existing pet.
func (c *APIClient) UpdatePet(ctx context.Context, authKey, petID, name, animalType, age string) (*Response, error) {
	body := encodeForm(petFields(name, animalType, age))

	response, err := c.doRequest(ctx, http.MethodPut, c.endpoints.UpdatePet(petID), authHeader(authKey), body)
	if err != nil {
		return nil, fmt.Errorf("updating pet: %w", err)
	}

	return response, nil
}

// DeletePet deletes a pet.  Repeated deletes are answered however the
// service chooses.
func (c *APIClient) DeletePet(ctx context.Context, authKey, petID string) (*Response, error) {
	response, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.DeletePet(petID), authHeader(authKey), nil)
	if err != nil {
		return nil, fmt.Errorf("deleting pet: %w", err)
	}

	return response, nil
}
