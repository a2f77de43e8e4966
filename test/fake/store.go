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

package fake

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petfriends-qa/api-tests/pkg/openapi"

	"k8s.io/utils/ptr"
)

var (
	ErrForbidden = errors.New("this user wasn't found in database")
	ErrNotFound  = errors.New("pet with this id wasn't found")
	ErrNotOwner  = errors.New("pet is owned by another user")
)

type account struct {
	userID   string
	password string
	key      string
}

// PetUpdate is a partial update, nil fields are left unchanged.
type PetUpdate struct {
	Name       *string
	AnimalType *string
	Age        *string
}

// Store is an in-memory account and pet store.  It is safe for concurrent use.
type Store struct {
	lock     sync.RWMutex
	accounts map[string]*account
	keys     map[string]string
	pets     map[string]openapi.Pet
	// order holds pet IDs, newest first, to give listings a stable order.
	order []string
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts: map[string]*account{},
		keys:     map[string]string{},
		pets:     map[string]openapi.Pet{},
		now:      time.Now,
	}
}

func newKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// AddAccount registers an account and returns its user ID.  Each account has
// a single key that is issued on every successful authentication.
func (s *Store) AddAccount(email, password string) string {
	s.lock.Lock()
	defer s.lock.Unlock()

	if existing, ok := s.accounts[email]; ok {
		existing.password = password
		return existing.userID
	}

	a := &account{
		userID:   uuid.NewString(),
		password: password,
		key:      newKey(),
	}

	s.accounts[email] = a
	s.keys[a.key] = a.userID

	return a.userID
}

// IssueKey returns the key for the given credentials.
func (s *Store) IssueKey(email, password string) (string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	a, ok := s.accounts[email]
	if !ok || a.password != password {
		return "", ErrForbidden
	}

	return a.key, nil
}

// Authenticate maps a key to the user ID it was issued for.
func (s *Store) Authenticate(key string) (string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	userID, ok := s.keys[key]
	if !ok || key == "" {
		return "", fmt.Errorf("%w: invalid auth key", ErrForbidden)
	}

	return userID, nil
}

// CreatePet stores a new pet owned by userID.
func (s *Store) CreatePet(userID, name, animalType, age, photo string) openapi.Pet {
	s.lock.Lock()
	defer s.lock.Unlock()

	now := s.now()

	pet := openapi.Pet{
		Id:         uuid.NewString(),
		Name:       name,
		AnimalType: animalType,
		Age:        openapi.StringOrNumber(age),
		PetPhoto:   photo,
		CreatedAt:  openapi.StringOrNumber(fmt.Sprintf("%d.%06d", now.Unix(), now.Nanosecond()/1000)),
		UserId:     userID,
	}

	s.pets[pet.Id] = pet
	s.order = slices.Insert(s.order, 0, pet.Id)

	return pet
}

// ListPets lists all pets, or only those owned by userID when mine is set.
func (s *Store) ListPets(userID string, mine bool) []openapi.Pet {
	s.lock.RLock()
	defer s.lock.RUnlock()

	pets := make([]openapi.Pet, 0, len(s.order))

	for _, id := range s.order {
		pet := s.pets[id]

		if mine && pet.UserId != userID {
			continue
		}

		pets = append(pets, pet)
	}

	return pets
}

// owned looks up a pet and checks ownership, the lock must be held.
func (s *Store) owned(userID, petID string) (openapi.Pet, error) {
	pet, ok := s.pets[petID]
	if !ok {
		return openapi.Pet{}, ErrNotFound
	}

	if pet.UserId != userID {
		return openapi.Pet{}, ErrNotOwner
	}

	return pet, nil
}

// UpdatePet applies a partial update to a pet owned by userID.
func (s *Store) UpdatePet(userID, petID string, update PetUpdate) (openapi.Pet, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	pet, err := s.owned(userID, petID)
	if err != nil {
		return openapi.Pet{}, err
	}

	pet.Name = ptr.Deref(update.Name, pet.Name)
	pet.AnimalType = ptr.Deref(update.AnimalType, pet.AnimalType)
	pet.Age = openapi.StringOrNumber(ptr.Deref(update.Age, pet.Age.String()))

	s.pets[petID] = pet

	return pet, nil
}

// SetPhoto replaces the photo of a pet owned by userID.
func (s *Store) SetPhoto(userID, petID, photo string) (openapi.Pet, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	pet, err := s.owned(userID, petID)
	if err != nil {
		return openapi.Pet{}, err
	}

	pet.PetPhoto = photo
	s.pets[petID] = pet

	return pet, nil
}

// DeletePet deletes a pet owned by userID.  Deleting a missing pet succeeds.
func (s *Store) DeletePet(userID, petID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, err := s.owned(userID, petID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return err
	}

	delete(s.pets, petID)

	s.order = slices.DeleteFunc(s.order, func(id string) bool {
		return id == petID
	})

	return nil
}
