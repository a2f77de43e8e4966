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

// Package api provides integration test utilities for the PetFriends API.
//
// # Client Behaviour
//
// The APIClient never fails on an HTTP status.  Every call yields a
// Response carrying the status code and the parsed body, and it is the
// caller's job to decide what a status means.  Arguments are forwarded as
// given so the service's own validation can be observed.  The client does
// not retry, and the auth key is passed explicitly on every call.
//
// # Test-Specific Features
//
// The client includes features tailored for integration testing:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - Optional validation of every response against the API document
//   - Direct access to HTTP status codes and response bodies
//
// # Targets
//
// With API_BASE_URL set the suites run against that deployment using the
// PETFRIENDS_EMAIL and PETFRIENDS_PASSWORD credentials.  Without it they run
// against the in-process fake service in test/fake.
package api
