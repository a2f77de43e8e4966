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

package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidScalar = errors.New("invalid value: must be a JSON string or number")

// StringOrNumber accepts either a JSON string or a JSON number and keeps
// the textual form.  The service returns age and creation time as strings
// for some records and as numbers for others.
type StringOrNumber string

func (s *StringOrNumber) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = StringOrNumber(str)

		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidScalar, string(data))
	}

	*s = StringOrNumber(num.String())

	return nil
}

func (s StringOrNumber) String() string {
	return string(s)
}
