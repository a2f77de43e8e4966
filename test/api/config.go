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

package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingConfig = errors.New("missing required configuration")

// Credentials used against the in-process fake service when no remote
// service is configured.
const (
	fakeEmail        = "tester@petfriends.test"
	fakePassword     = "correct-horse-battery-staple"
	fakeInvalidEmail = "nobody@petfriends.invalid"
)

type TestConfig struct {
	BaseURL           string
	Email             string
	Password          string
	InvalidEmail      string
	RequestTimeout    time.Duration
	UseFakeServer     bool
	SkipIntegration   bool
	DebugLogging      bool
	LogRequests       bool
	LogResponses      bool
	ValidateResponses bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// An empty API_BASE_URL selects the in-process fake service.  Returns an error
// if a remote service is configured but required values are missing.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:           strings.TrimSuffix(os.Getenv("API_BASE_URL"), "/"),
		Email:             os.Getenv("PETFRIENDS_EMAIL"),
		Password:          os.Getenv("PETFRIENDS_PASSWORD"),
		InvalidEmail:      os.Getenv("PETFRIENDS_INVALID_EMAIL"),
		RequestTimeout:    getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		SkipIntegration:   getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:      getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
		ValidateResponses: getBoolWithDefault("VALIDATE_RESPONSES", false),
	}

	if config.BaseURL == "" {
		config.UseFakeServer = true
		config.Email = valueOrDefault(config.Email, fakeEmail)
		config.Password = valueOrDefault(config.Password, fakePassword)
	}

	config.InvalidEmail = valueOrDefault(config.InvalidEmail, fakeInvalidEmail)

	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}

	return value
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		".env",          // From the repository root, e.g. the CLI
		"../../.env",    // From test/api
		"../../../.env", // From test/api/suites
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
func validateRequiredFields(config *TestConfig) error {
	if config.UseFakeServer {
		return nil
	}

	var missing []string

	required := map[string]string{
		"PETFRIENDS_EMAIL":    config.Email,
		"PETFRIENDS_PASSWORD": config.Password,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return fmt.Errorf("%w: %s. Please set these environment variables or add them to a .env file", ErrMissingConfig, strings.Join(missing, ", "))
	}

	return nil
}
