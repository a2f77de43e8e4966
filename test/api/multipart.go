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

package api

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	formContentType = "application/x-www-form-urlencoded"
	octetStream     = "application/octet-stream"
)

//nolint:gochecknoglobals
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// requestBody is an encoded request body and its content type.
type requestBody struct {
	contentType string
	data        []byte
}

// formField is an ordered form field, the service sees fields in the order
// they are written.
type formField struct {
	name  string
	value string
}

func petFields(name, animalType, age string) []formField {
	return []formField{
		{name: "name", value: name},
		{name: "animal_type", value: animalType},
		{name: "age", value: age},
	}
}

func encodeForm(fields []formField) *requestBody {
	values := url.Values{}

	for _, field := range fields {
		values.Add(field.name, field.value)
	}

	return &requestBody{
		contentType: formContentType,
		data:        []byte(values.Encode()),
	}
}

// encodeMultipart writes fields followed by the file at filePath as a
// multipart/form-data body.
func encodeMultipart(fields []formField, fileField, filePath string) (*requestBody, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileField, err)
	}

	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, fmt.Errorf("writing field %s: %w", field.name, err)
		}
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(fileField), quoteEscaper.Replace(filepath.Base(filePath))))
	header.Set("Content-Type", detectContentType(filePath, data))

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("creating %s part: %w", fileField, err)
	}

	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("writing %s part: %w", fileField, err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	return &requestBody{
		contentType: writer.FormDataContentType(),
		data:        buffer.Bytes(),
	}, nil
}

// detectContentType sniffs the file contents and falls back to the file
// extension when the contents are not recognised.
func detectContentType(filePath string, data []byte) string {
	contentType := http.DetectContentType(data)
	if contentType != octetStream {
		return contentType
	}

	if byExtension := mime.TypeByExtension(filepath.Ext(filePath)); byExtension != "" {
		return byExtension
	}

	return octetStream
}
