/*
 *     Copyright 2024 The Kpifault Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package digest

import (
	// Register sha256 for go-digest.
	_ "crypto/sha256"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
)

// Algorithm is the digest algorithm of artifacts and downloaded sources.
const Algorithm = digest.SHA256

// FromBytes returns the digest of data, in the form "sha256:<hex>".
func FromBytes(data []byte) string {
	return Algorithm.FromBytes(data).String()
}

// FromReader returns the digest of everything read from r.
func FromReader(r io.Reader) (string, error) {
	d, err := Algorithm.FromReader(r)
	if err != nil {
		return "", err
	}

	return d.String(), nil
}

// HashFile returns the digest of the file content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return FromReader(f)
}

// Verify reports whether encoded is a well formed digest of data.
func Verify(encoded string, data []byte) (bool, error) {
	d, err := digest.Parse(encoded)
	if err != nil {
		return false, err
	}

	return d.Algorithm().FromBytes(data) == d, nil
}
