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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petfriends-qa/api-tests/pkg/openapi"

	"k8s.io/apimachinery/pkg/util/sets"
)

// ObtainAuthKey gets an auth key for the configured credentials and fails
// the spec if none is issued.
func ObtainAuthKey(client *APIClient, ctx context.Context, config *TestConfig) string {
	resp, err := client.GetAPIKey(ctx, config.Email, config.Password)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "auth key request failed: %s", resp)

	key := resp.Key()
	Expect(key).NotTo(BeEmpty(), "auth key response carries no key: %s", resp)

	return key
}

// ListPets lists pets and fails the spec unless the listing succeeds.
func ListPets(client *APIClient, ctx context.Context, authKey string, filter openapi.PetFilter) []openapi.Pet {
	resp, err := client.ListPets(ctx, authKey, filter)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "listing pets with filter %q failed: %s", filter, resp)

	pets, err := resp.Pets()
	Expect(err).NotTo(HaveOccurred())

	return pets
}

// CreatePetWithCleanup creates a pet and schedules automatic deletion.  A
// payload without a photo path goes through the photo-less endpoint.
func CreatePetWithCleanup(client *APIClient, ctx context.Context, authKey string, payload PetPayload) openapi.Pet {
	var (
		resp *Response
		err  error
	)

	if payload.PhotoPath == "" {
		resp, err = client.AddPetWithoutPhoto(ctx, authKey, payload.Name, payload.AnimalType, payload.Age)
	} else {
		resp, err = client.AddPet(ctx, authKey, payload.Name, payload.AnimalType, payload.Age, payload.PhotoPath)
	}

	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "creating pet failed: %s", resp)

	pet, err := resp.Pet()
	Expect(err).NotTo(HaveOccurred())
	Expect(pet.Id).NotTo(BeEmpty())

	GinkgoWriter.Printf("Created pet with ID: %s\n", pet.Id)

	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func() {
		deleteResp, deleteErr := client.DeletePet(ctx, authKey, pet.Id)
		if deleteErr != nil {
			GinkgoWriter.Printf("Warning: Failed to delete pet %s: %v\n", pet.Id, deleteErr)
			return
		}

		GinkgoWriter.Printf("Cleaned up pet %s: status=%d\n", pet.Id, deleteResp.StatusCode)
	})

	return *pet
}

// EnsureOwnPet returns a pet owned by the key holder, creating one with
// cleanup when the account owns none.
func EnsureOwnPet(client *APIClient, ctx context.Context, authKey string) openapi.Pet {
	pets := ListPets(client, ctx, authKey, openapi.PetFilterMyPets)
	if len(pets) > 0 {
		return pets[0]
	}

	GinkgoWriter.Printf("Account owns no pets, creating a fixture\n")

	return CreatePetWithCleanup(client, ctx, authKey, NewPetPayload().WithRandomName().Build())
}

// ExpectStatusIn asserts the response status is one of the given codes.
func ExpectStatusIn(resp *Response, codes ...int) {
	Expect(resp.StatusCode).To(BeElementOf(codes), "unexpected status: %s", resp)
}

// VerifyPetPresence verifies that a pet is present in the list.
func VerifyPetPresence(pets []openapi.Pet, petID string) {
	Expect(sets.List(extractPetIDs(pets))).To(ContainElement(petID), "Expected pet ID %s to be present in the list", petID)
}

// VerifyPetAbsence verifies that a pet is absent from the list.
func VerifyPetAbsence(pets []openapi.Pet, petID string) {
	Expect(extractPetIDs(pets).Has(petID)).To(BeFalse(), "Expected pet ID %s to be absent from the list", petID)
}

// FindPet returns the pet with the given ID from a list.
func FindPet(pets []openapi.Pet, petID string) (openapi.Pet, bool) {
	for _, pet := range pets {
		if pet.Id == petID {
			return pet, true
		}
	}

	return openapi.Pet{}, false
}

// VerifyPetFields verifies the descriptive fields of a pet.
func VerifyPetFields(pet openapi.Pet, payload PetPayload) {
	Expect(pet.Name).To(Equal(payload.Name))
	Expect(pet.AnimalType).To(Equal(payload.AnimalType))
	Expect(pet.Age.String()).To(Equal(payload.Age))
}

// extractPetIDs extracts pet IDs from a list of pets.
func extractPetIDs(pets []openapi.Pet) sets.Set[string] {
	ids := sets.New[string]()

	for _, pet := range pets {
		ids.Insert(pet.Id)
	}

	return ids
}
