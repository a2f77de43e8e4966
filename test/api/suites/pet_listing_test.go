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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petfriends-qa/api-tests/pkg/openapi"
	"github.com/petfriends-qa/api-tests/test/api"
)

var _ = Describe("Pet Listing", func() {
	var authKey string

	BeforeEach(func() {
		authKey = api.ObtainAuthKey(client, ctx, config)
	})

	Context("When listing pets", func() {
		Describe("Given the account owns at least one pet", func() {
			var own openapi.Pet

			BeforeEach(func() {
				own = api.EnsureOwnPet(client, ctx, authKey)
			})

			It("should return every visible pet without a filter", func() {
				all := api.ListPets(client, ctx, authKey, openapi.PetFilterAll)
				Expect(all).NotTo(BeEmpty())
			})

			It("should return the caller's pets with the my_pets filter", func() {
				mine := api.ListPets(client, ctx, authKey, openapi.PetFilterMyPets)
				Expect(mine).NotTo(BeEmpty())
				api.VerifyPetPresence(mine, own.Id)

				for _, pet := range mine {
					if pet.UserId != "" {
						Expect(pet.UserId).To(Equal(mine[0].UserId), "my_pets returned pets of several owners")
					}
				}
			})

			It("should never return fewer pets without a filter", func() {
				mine := api.ListPets(client, ctx, authKey, openapi.PetFilterMyPets)
				all := api.ListPets(client, ctx, authKey, openapi.PetFilterAll)
				Expect(len(all)).To(BeNumerically(">=", len(mine)))
			})
		})
	})
})
