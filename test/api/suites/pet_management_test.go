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

var _ = Describe("Pet Management", func() {
	var (
		authKey string
		pet     openapi.Pet
	)

	BeforeEach(func() {
		authKey = api.ObtainAuthKey(client, ctx, config)
		pet = api.CreatePetWithCleanup(client, ctx, authKey, api.NewPetPayload().WithRandomName().Build())
	})

	Context("When updating a pet", func() {
		Describe("Given an owned pet", func() {
			It("should replace the descriptive fields exactly", func() {
				payload := api.NewPetPayload().WithName("Картошка").WithAnimalType("Кошка").WithAge("5").Build()

				resp, err := client.UpdatePet(ctx, authKey, pet.Id, payload.Name, payload.AnimalType, payload.Age)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK), "update failed: %s", resp)

				updated, err := resp.Pet()
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.Id).To(Equal(pet.Id))
				api.VerifyPetFields(*updated, payload)

				listed, found := api.FindPet(api.ListPets(client, ctx, authKey, openapi.PetFilterMyPets), pet.Id)
				Expect(found).To(BeTrue())
				api.VerifyPetFields(listed, payload)
			})
		})
	})

	Context("When setting a photo", func() {
		Describe("Given an owned pet without a photo", func() {
			It("should attach the photo", func() {
				Expect(pet.PetPhoto).To(BeEmpty())

				photo, err := api.WriteImageFixture(GinkgoT().TempDir(), "rabbit.jpg")
				Expect(err).NotTo(HaveOccurred())

				resp, err := client.SetPhoto(ctx, authKey, pet.Id, photo)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK), "set photo failed: %s", resp)

				updated, err := resp.Pet()
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.PetPhoto).NotTo(BeEmpty())
			})
		})
	})

	Context("When deleting a pet", func() {
		Describe("Given an owned pet", func() {
			It("should remove it from the caller's pets", func() {
				resp, err := client.DeletePet(ctx, authKey, pet.Id)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK), "delete failed: %s", resp)

				api.VerifyPetAbsence(api.ListPets(client, ctx, authKey, openapi.PetFilterMyPets), pet.Id)
			})
		})
	})
})
