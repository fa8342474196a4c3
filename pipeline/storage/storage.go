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

//go:generate mockgen -destination mocks/storage_mock.go -source storage.go -package mocks

package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/parquet-go/parquet-go"

	"github.com/netkpi/kpifault/internal/kferrors"
	"github.com/netkpi/kpifault/pipeline/kpi"
	"github.com/netkpi/kpifault/pkg/fileutils"
)

// utf8BOM is stripped from raw exports written by spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Storage is the interface used for storage.
type Storage interface {
	// CreateRaw replaces the raw csv file with the content of reader.
	CreateRaw(io.Reader) error

	// ListMeasurements returns measurements of the raw csv file.
	ListMeasurements() ([]kpi.Measurement, error)

	// CreateCurated replaces the curated parquet file with records.
	CreateCurated([]kpi.Curated) error

	// ListCurated returns records of the curated parquet file.
	ListCurated() ([]kpi.Curated, error)

	// RawFilename returns the raw csv file path.
	RawFilename() string

	// CuratedFilename returns the curated parquet file path.
	CuratedFilename() string
}

type storage struct {
	rawFilename     string
	curatedFilename string
}

// New returns a new Storage instance.
func New(rawFilename, curatedFilename string) Storage {
	return &storage{
		rawFilename:     rawFilename,
		curatedFilename: curatedFilename,
	}
}

// CreateRaw replaces the raw csv file with the content of reader.
func (s *storage) CreateRaw(reader io.Reader) error {
	err := fileutils.ReplaceFile(s.rawFilename, func(w io.Writer) error {
		_, err := io.Copy(w, reader)
		return err
	})
	if err != nil {
		return kferrors.New(kferrors.Persistence, s.rawFilename, err)
	}

	return nil
}

// ListMeasurements returns measurements of the raw csv file.
func (s *storage) ListMeasurements() ([]kpi.Measurement, error) {
	data, err := os.ReadFile(s.rawFilename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, kferrors.New(kferrors.NotFound, s.rawFilename, err)
		}

		return nil, kferrors.New(kferrors.Persistence, s.rawFilename, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if err := checkHeader(data); err != nil {
		return nil, kferrors.New(kferrors.Schema, s.rawFilename, err)
	}

	var measurements []kpi.Measurement
	if err := gocsv.UnmarshalBytes(data, &measurements); err != nil {
		return nil, kferrors.New(kferrors.Validation, s.rawFilename, err)
	}

	return measurements, nil
}

// checkHeader reports the required columns missing from the header row.
func checkHeader(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("missing header row")
		}

		return err
	}

	columns := make(map[string]struct{}, len(header))
	for _, column := range header {
		columns[column] = struct{}{}
	}

	var missing []string
	for _, column := range kpi.RequiredColumns {
		if _, ok := columns[column]; !ok {
			missing = append(missing, column)
		}
	}

	if len(missing) > 0 {
		return errors.New("missing columns " + strings.Join(missing, ", "))
	}

	return nil
}

// CreateCurated replaces the curated parquet file with records.
func (s *storage) CreateCurated(records []kpi.Curated) error {
	err := fileutils.ReplaceFile(s.curatedFilename, func(w io.Writer) error {
		writer := parquet.NewGenericWriter[kpi.Curated](w)
		if _, err := writer.Write(records); err != nil {
			return err
		}

		return writer.Close()
	})
	if err != nil {
		return kferrors.New(kferrors.Persistence, s.curatedFilename, err)
	}

	return nil
}

// ListCurated returns records of the curated parquet file.
func (s *storage) ListCurated() ([]kpi.Curated, error) {
	if _, err := os.Stat(s.curatedFilename); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, kferrors.New(kferrors.NotFound, s.curatedFilename, err)
		}

		return nil, kferrors.New(kferrors.Persistence, s.curatedFilename, err)
	}

	records, err := parquet.ReadFile[kpi.Curated](s.curatedFilename)
	if err != nil {
		return nil, kferrors.New(kferrors.Schema, s.curatedFilename, err)
	}

	return records, nil
}

// RawFilename returns the raw csv file path.
func (s *storage) RawFilename() string {
	return s.rawFilename
}

// CuratedFilename returns the curated parquet file path.
func (s *storage) CuratedFilename() string {
	return s.curatedFilename
}
