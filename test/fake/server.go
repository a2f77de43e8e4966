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

// Package fake implements the PetFriends API in memory.  It mirrors the
// observable behaviour of the public deployment closely enough for the
// suites to run without network access.
package fake

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	"github.com/petfriends-qa/api-tests/pkg/constants"
	"github.com/petfriends-qa/api-tests/pkg/openapi"

	"k8s.io/utils/ptr"
)

const (
	// maxUploadSize bounds multipart bodies and photos.
	maxUploadSize = 10 << 20

	photoField = "pet_photo"
)

var (
	ErrMissingPhoto = errors.New("pet_photo is required")
	ErrNotAnImage   = errors.New("pet_photo is not an image")
	ErrPhotoTooBig  = errors.New("pet_photo exceeds the upload limit")
	ErrBadFilter    = errors.New("filter value is incorrect")
)

type userIDKey struct{}

// createPetRequest is the form accepted when creating a pet with a photo.
type createPetRequest struct {
	Name       string `form:"name" validate:"required"`
	AnimalType string `form:"animal_type" validate:"required"`
	Age        string `form:"age" validate:"required,numeric"`
}

// simplePetRequest is the form accepted when creating a pet without a photo.
type simplePetRequest struct {
	Name       string `form:"name"`
	AnimalType string `form:"animal_type"`
	Age        string `form:"age" validate:"omitempty,numeric"`
}

// Server serves the PetFriends API from a Store.
type Server struct {
	store    *Store
	validate *validator.Validate
}

func NewServer(store *Store) *Server {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("form")
	})

	return &Server{
		store:    store,
		validate: validate,
	}
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/api/key", s.getAPIKey)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/api/pets", s.listPets)
		r.Post("/api/pets", s.createPet)
		r.Post("/api/create_pet_simple", s.createPetSimple)
		r.Post("/api/pets/set_photo/{pet_id}", s.setPhoto)
		r.Put("/api/pets/{pet_id}", s.updatePet)
		r.Delete("/api/pets/{pet_id}", s.deletePet)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, openapi.Error{
		Error:       http.StatusText(status),
		Description: err.Error(),
	})
}

// writeStoreError maps store errors onto the statuses the service uses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey{}).(string)

	return id
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.store.Authenticate(r.Header.Get(constants.AuthKeyHeader))
		if err != nil {
			writeError(w, http.StatusForbidden, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, id)))
	})
}

// petID binds the pet_id path parameter.
func petID(r *http.Request) (string, error) {
	var id string

	err := runtime.BindStyledParameterWithOptions("simple", "pet_id", chi.URLParam(r, "pet_id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter pet_id: %w", err)
	}

	return id, nil
}

// validationError describes the first failing field.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return fmt.Errorf("field %s failed %s validation", errs[0].Field(), errs[0].Tag())
	}

	return err
}

// readPhoto reads the photo part and returns it as a data URI.
func readPhoto(r *http.Request) (string, error) {
	file, _, err := r.FormFile(photoField)
	if err != nil {
		return "", ErrMissingPhoto
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", photoField, err)
	}

	if len(data) > maxUploadSize {
		return "", fmt.Errorf("%w of %d bytes", ErrPhotoTooBig, maxUploadSize)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotAnImage, contentType)
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *Server) getAPIKey(w http.ResponseWriter, r *http.Request) {
	key, err := s.store.IssueKey(r.Header.Get(constants.EmailHeader), r.Header.Get(constants.PasswordHeader))
	if err != nil {
		writeError(w, http.StatusForbidden, err)
		return
	}

	writeJSON(w, http.StatusOK, openapi.AuthKey{Key: key})
}

func (s *Server) listPets(w http.ResponseWriter, r *http.Request) {
	var mine bool

	switch openapi.PetFilter(r.URL.Query().Get("filter")) {
	case openapi.PetFilterAll:
	case openapi.PetFilterMyPets:
		mine = true
	default:
		writeError(w, http.StatusBadRequest, ErrBadFilter)
		return
	}

	writeJSON(w, http.StatusOK, openapi.PetList{Pets: s.store.ListPets(userID(r), mine)})
}

func (s *Server) createPet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	request := createPetRequest{
		Name:       r.PostFormValue("name"),
		AnimalType: r.PostFormValue("animal_type"),
		Age:        r.PostFormValue("age"),
	}

	if err := s.validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, validationError(err))
		return
	}

	photo, err := readPhoto(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, s.store.CreatePet(userID(r), request.Name, request.AnimalType, request.Age, photo))
}

func (s *Server) createPetSimple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	request := simplePetRequest{
		Name:       r.PostForm.Get("name"),
		AnimalType: r.PostForm.Get("animal_type"),
		Age:        r.PostForm.Get("age"),
	}

	if err := s.validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, validationError(err))
		return
	}

	writeJSON(w, http.StatusOK, s.store.CreatePet(userID(r), request.Name, request.AnimalType, request.Age, ""))
}

func (s *Server) setPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := petID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	photo, err := readPhoto(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pet, err := s.store.SetPhoto(userID(r), id, photo)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) updatePet(w http.ResponseWriter, r *http.Request) {
	id, err := petID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var update PetUpdate

	if r.PostForm.Has("name") {
		update.Name = ptr.To(r.PostForm.Get("name"))
	}

	if r.PostForm.Has("animal_type") {
		update.AnimalType = ptr.To(r.PostForm.Get("animal_type"))
	}

	if r.PostForm.Has("age") {
		age := r.PostForm.Get("age")

		if err := s.validate.Var(age, "numeric"); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("field age failed numeric validation: %w", err))
			return
		}

		update.Age = ptr.To(age)
	}

	pet, err := s.store.UpdatePet(userID(r), id, update)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) deletePet(w http.ResponseWriter, r *http.Request) {
	id, err := petID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.store.DeletePet(userID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
