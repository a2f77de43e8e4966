package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
)

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

func GenerateTestID() string {
	return generateRandomName("test")
}

// PetPayload describes a pet to create or update.
type PetPayload struct {
	Name       string
	AnimalType string
	Age        string
	PhotoPath  string
}

// PetPayloadBuilder builds pet payloads for testing.
type PetPayloadBuilder struct {
	payload PetPayload
}

// NewPetPayload creates a new pet payload builder with defaults.
func NewPetPayload() *PetPayloadBuilder {
	return &PetPayloadBuilder{
		payload: PetPayload{
			Name:       "Bob",
			AnimalType: "Dog",
			Age:        "4",
		},
	}
}

// WithName sets the pet name.
func (b *PetPayloadBuilder) WithName(name string) *PetPayloadBuilder {
	b.payload.Name = name
	return b
}

// WithRandomName sets a unique pet name so fixtures can be told apart.
func (b *PetPayloadBuilder) WithRandomName() *PetPayloadBuilder {
	b.payload.Name = generateRandomName("pet")
	return b
}

// WithAnimalType sets the animal type.
func (b *PetPayloadBuilder) WithAnimalType(animalType string) *PetPayloadBuilder {
	b.payload.AnimalType = animalType
	return b
}

// WithAge sets the age, which is sent as text and not checked locally.
func (b *PetPayloadBuilder) WithAge(age string) *PetPayloadBuilder {
	b.payload.Age = age
	return b
}

// WithPhoto sets the photo path (pass empty string to create without a photo).
func (b *PetPayloadBuilder) WithPhoto(path string) *PetPayloadBuilder {
	b.payload.PhotoPath = path
	return b
}

// Build returns the completed pet payload.
func (b *PetPayloadBuilder) Build() PetPayload {
	return b.payload
}

// WriteImageFixture writes a small JPEG into dir and returns its path.
func WriteImageFixture(dir, name string) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))

	for x := range 16 {
		for y := range 16 {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255}) //nolint:gosec // bounded by loop
		}
	}

	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating image fixture: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("encoding image fixture: %w", err)
	}

	return path, nil
}

// WriteTextFixture writes a plain text file into dir for negative photo tests.
func WriteTextFixture(dir, name string) (string, error) {
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte("this is not an image\n"), 0o600); err != nil {
		return "", fmt.Errorf("writing text fixture: %w", err)
	}

	return path, nil
}
