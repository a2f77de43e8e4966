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

var _ = Describe("Authentication", func() {
	Context("When requesting an auth key", func() {
		Describe("Given valid credentials", func() {
			It("should issue a non-empty key", func() {
				resp, err := client.GetAPIKey(ctx, config.Email, config.Password)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK), "auth key request failed: %s", resp)
				Expect(resp.Object()).To(HaveKey("key"))
				Expect(resp.Key()).NotTo(BeEmpty())
			})
		})

		Describe("Given invalid credentials", func() {
			It("should reject an invalid password", func() {
				resp, err := client.GetAPIKey(ctx, config.Email, "123456789")
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusIn(resp, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden)
				Expect(resp.Key()).To(BeEmpty())
				GinkgoWriter.Printf("Invalid password response: %s\n", resp)
			})

			It("should reject an unknown email", func() {
				resp, err := client.GetAPIKey(ctx, config.InvalidEmail, config.Password)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusIn(resp, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden)
				Expect(resp.Key()).To(BeEmpty())
				GinkgoWriter.Printf("Invalid email response: %s\n", resp)
			})
		})
	})

	Context("When calling pet endpoints", func() {
		Describe("Given an invalid auth key", func() {
			It("should reject the listing", func() {
				resp, err := client.ListPets(ctx, "invalid-"+api.GenerateTestID(), openapi.PetFilterAll)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			})

			It("should reject pet creation", func() {
				resp, err := client.AddPetWithoutPhoto(ctx, "invalid-"+api.GenerateTestID(), "Bob", "Dog", "4")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			})
		})
	})
})
