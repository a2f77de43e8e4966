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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petfriends-qa/api-tests/pkg/openapi"
	"github.com/petfriends-qa/api-tests/test/api"
	"github.com/petfriends-qa/api-tests/test/fake"
)

var _ = Describe("API Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("When the service answers with canned responses", func() {
		var (
			transport *httpmock.MockTransport
			client    *api.APIClient
		)

		BeforeEach(func() {
			transport = httpmock.NewMockTransport()

			var err error
			client, err = api.NewAPIClientWithDoer(testConfig(), &http.Client{Transport: transport})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should pass the filter and auth key through unchanged", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/api/pets?filter=my_pets",
				func(req *http.Request) (*http.Response, error) {
					Expect(req.Header.Get("auth_key")).To(Equal("opaque-key"))

					return httpmock.NewStringResponse(http.StatusOK, `{"pets":[{"id":"1","name":"Bob","animal_type":"Dog","age":"4"}]}`), nil
				})

			resp, err := client.ListPets(ctx, "opaque-key", openapi.PetFilterMyPets)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			pets, err := resp.Pets()
			Expect(err).NotTo(HaveOccurred())
			Expect(pets).To(HaveLen(1))
			Expect(pets[0].Name).To(Equal("Bob"))
		})

		It("should not retry server errors", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/api/key",
				httpmock.NewStringResponder(http.StatusInternalServerError, "internal error"))

			resp, err := client.GetAPIKey(ctx, "a@b.c", "secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(resp.Body).To(Equal("internal error"))
			Expect(transport.GetTotalCallCount()).To(Equal(1))
		})

		It("should expose parsed JSON objects", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/api/key",
				httpmock.NewStringResponder(http.StatusOK, `{"key":"abc","extra":true}`))

			resp, err := client.GetAPIKey(ctx, "a@b.c", "secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Object()).To(HaveKeyWithValue("extra", true))
			Expect(resp.String()).To(ContainSubstring("status=200"))
		})
	})

	Context("When talking to the fake service", func() {
		var (
			client  *api.APIClient
			config  *api.TestConfig
			authKey string
			photo   string
		)

		BeforeEach(func() {
			store := fake.NewStore()
			server := httptest.NewServer(fake.NewServer(store).Handler())
			DeferCleanup(server.Close)

			config = testConfig()
			config.BaseURL = server.URL
			config.Email = "tester@petfriends.test"
			config.Password = "secret"
			config.ValidateResponses = true

			store.AddAccount(config.Email, config.Password)

			var err error
			client, err = api.NewAPIClientWithConfig(config)
			Expect(err).NotTo(HaveOccurred())

			authKey = api.ObtainAuthKey(client, ctx, config)

			photo, err = api.WriteImageFixture(GinkgoT().TempDir(), "dog.jpg")
			Expect(err).NotTo(HaveOccurred())
		})

		It("should round trip a pet through create, list, update and delete", func() {
			payload := api.NewPetPayload().WithPhoto(photo).Build()
			pet := api.CreatePetWithCleanup(client, ctx, authKey, payload)
			api.VerifyPetFields(pet, payload)
			Expect(pet.PetPhoto).To(HavePrefix("data:image/jpeg;base64,"))

			listed, found := api.FindPet(api.ListPets(client, ctx, authKey, openapi.PetFilterMyPets), pet.Id)
			Expect(found).To(BeTrue())
			api.VerifyPetFields(listed, payload)

			resp, err := client.UpdatePet(ctx, authKey, pet.Id, "Картошка", "Кошка", "5")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.ContractError).NotTo(HaveOccurred())

			resp, err = client.DeletePet(ctx, authKey, pet.Id)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			api.VerifyPetAbsence(api.ListPets(client, ctx, authKey, openapi.PetFilterMyPets), pet.Id)
		})

		It("should create a fixture pet only when the account owns none", func() {
			first := api.EnsureOwnPet(client, ctx, authKey)
			second := api.EnsureOwnPet(client, ctx, authKey)
			Expect(second.Id).To(Equal(first.Id))
		})

		It("should accept statuses from a set", func() {
			resp, err := client.ListPets(ctx, "invalid-key", openapi.PetFilterAll)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatusIn(resp, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden)
			Expect(resp.ContractError).NotTo(HaveOccurred())
		})
	})
})
