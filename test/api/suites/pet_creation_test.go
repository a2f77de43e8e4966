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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petfriends-qa/api-tests/pkg/openapi"
	"github.com/petfriends-qa/api-tests/test/api"
)

// cleanupIfCreated removes a pet the service accepted where rejection was
// also acceptable.
func cleanupIfCreated(resp *api.Response, authKey string) {
	if resp.StatusCode != http.StatusOK {
		return
	}

	pet, err := resp.Pet()
	if err != nil || pet.Id == "" {
		return
	}

	DeferCleanup(func() {
		_, _ = client.DeletePet(ctx, authKey, pet.Id)
	})
}

var _ = Describe("Pet Creation", func() {
	var authKey string

	BeforeEach(func() {
		authKey = api.ObtainAuthKey(client, ctx, config)
	})

	Context("When adding a pet with a photo", func() {
		Describe("Given valid pet data", func() {
			It("should create the pet and list it among the caller's pets", func() {
				photo, err := api.WriteImageFixture(GinkgoT().TempDir(), "cat1.jpg")
				Expect(err).NotTo(HaveOccurred())

				payload := api.NewPetPayload().WithPhoto(photo).Build()
				pet := api.CreatePetWithCleanup(client, ctx, authKey, payload)

				api.VerifyPetFields(pet, payload)
				Expect(pet.PetPhoto).NotTo(BeEmpty())

				listed, found := api.FindPet(api.ListPets(client, ctx, authKey, openapi.PetFilterMyPets), pet.Id)
				Expect(found).To(BeTrue(), "pet %s missing from my_pets", pet.Id)
				api.VerifyPetFields(listed, payload)
				Expect(listed.PetPhoto).NotTo(BeEmpty())
			})
		})

		Describe("Given a photo that is not an image", func() {
			It("should not store a corrupted photo", func() {
				photo, err := api.WriteTextFixture(GinkgoT().TempDir(), "notes.txt")
				Expect(err).NotTo(HaveOccurred())

				resp, err := client.AddPet(ctx, authKey, "Bob", "Dog", "4", photo)
				Expect(err).NotTo(HaveOccurred())

				if resp.StatusCode == http.StatusOK {
					cleanupIfCreated(resp, authKey)

					pet, err := resp.Pet()
					Expect(err).NotTo(HaveOccurred())
					Expect(pet.PetPhoto).To(BeEmpty(), "service stored a non-image photo")

					return
				}

				Expect(resp.StatusCode).To(BeNumerically(">=", http.StatusBadRequest))
			})
		})
	})

	Context("When adding a pet without a photo", func() {
		Describe("Given valid pet data", func() {
			It("should create the pet with no photo", func() {
				payload := api.NewPetPayload().WithAge("7").Build()
				pet := api.CreatePetWithCleanup(client, ctx, authKey, payload)

				api.VerifyPetFields(pet, payload)
				Expect(pet.PetPhoto).To(BeEmpty())
			})
		})

		Describe("Given no pet data", func() {
			It("should either accept or reject the request as a bad request", func() {
				resp, err := client.AddPetWithoutPhoto(ctx, authKey, "", "", "")
				Expect(err).NotTo(HaveOccurred())

				cleanupIfCreated(resp, authKey)
				api.ExpectStatusIn(resp, http.StatusOK, http.StatusBadRequest)
			})
		})

		Describe("Given a non-numeric age", func() {
			It("should either accept or reject the request", func() {
				resp, err := client.AddPetWithoutPhoto(ctx, authKey, "Bob", "Dog", "abc")
				Expect(err).NotTo(HaveOccurred())

				cleanupIfCreated(resp, authKey)
				api.ExpectStatusIn(resp, http.StatusOK, http.StatusBadRequest, http.StatusForbidden)
			})
		})
	})
})
