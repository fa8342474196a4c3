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
// Package fileutils provides utilities supplementing the standard 'os' and 'path' package.
package fileutils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// MkdirAll creates a directory named path on perm(0755).
func MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// ReplaceFile writes a sibling temporary file and renames it over filename,
// so readers never observe a partial file. The parent directory is created
// when it does not exist.
func ReplaceFile(filename string, write func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	if err := MkdirAll(dir); err != nil {
		return err
	}

	if IsDir(filename) {
		return errors.Errorf("replace %s: is a directory", filename)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	tmp := file.Name()

	if err := write(file); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return err
	}

	return nil
}

// PathExist reports whether the path is exist.
// Any error get from os.Stat, it will return false.
func PathExist(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// IsDir reports whether the path is a directory.
func IsDir(name string) bool {
	f, e := os.Stat(name)
	if e != nil {
		return false
	}
	return f.IsDir()
}

// IsRegularFile reports whether the file is a regular file.
// If the given file is a symbol link, it will follow the link.
func IsRegularFile(name string) bool {
	f, e := os.Stat(name)
	if e != nil {
		return false
	}

	return f.Mode().IsRegular()
}
