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

//nolint:revive // field names follow the wire schema
package openapi

// PetFilter selects the scope of a pet listing.
type PetFilter string

const (
	// PetFilterAll lists every pet visible to the caller.
	PetFilterAll PetFilter = ""
	// PetFilterMyPets lists only pets owned by the caller.
	PetFilterMyPets PetFilter = "my_pets"
)

// AuthKey is returned by the key endpoint on successful authentication.
type AuthKey struct {
	Key string `json:"key"`
}

// Pet is a pet record as returned by the service.
type Pet struct {
	Id         string         `json:"id"`
	Name       string         `json:"name"`
	AnimalType string         `json:"animal_type"`
	Age        StringOrNumber `json:"age"`
	PetPhoto   string         `json:"pet_photo"`
	CreatedAt  StringOrNumber `json:"created_at,omitempty"`
	UserId     string         `json:"user_id,omitempty"`
}

// PetList is the listing envelope.
type PetList struct {
	Pets []Pet `json:"pets"`
}

// Error is the JSON error body.  The remote service usually answers errors
// with HTML, so clients must not depend on this shape.
type Error struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}
