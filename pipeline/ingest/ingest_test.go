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

package ingest

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netkpi/kpifault/internal/kferrors"
	"github.com/netkpi/kpifault/pipeline/config"
	"github.com/netkpi/kpifault/pipeline/storage"
	"github.com/netkpi/kpifault/pkg/digest"
	"github.com/netkpi/kpifault/pkg/objectstorage"
	"github.com/netkpi/kpifault/pkg/objectstorage/mocks"
)

const mockContent = "Timestamp,Locality\n2024-01-01 00:00:00,Mahanagar\n"

var mockSource = config.ObjectStorageConfig{
	Enable:     true,
	Name:       objectstorage.ServiceNameS3,
	BucketName: "telecom",
	ObjectKey:  "raw/signal_metrics.csv",
}

func TestIngest_Local(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, rawFilename string)
		expect func(t *testing.T, err error)
	}{
		{
			name: "raw file exists",
			mock: func(t *testing.T, rawFilename string) {
				require.NoError(t, os.WriteFile(rawFilename, []byte(mockContent), 0644))
			},
			expect: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "raw file does not exist",
			mock: func(t *testing.T, rawFilename string) {},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(kferrors.IsNotFound(err))
				assert.ErrorContains(err, "signal_metrics.csv")
			},
		},
		{
			name: "raw file is a directory",
			mock: func(t *testing.T, rawFilename string) {
				require.NoError(t, os.MkdirAll(rawFilename, 0755))
			},
			expect: func(t *testing.T, err error) {
				assert.True(t, kferrors.IsNotFound(err))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			rawFilename := filepath.Join(dir, "signal_metrics.csv")
			tc.mock(t, rawFilename)

			i := New(storage.New(rawFilename, filepath.Join(dir, "kpi_metrics.parquet")))
			tc.expect(t, i.Ingest(context.Background()))
		})
	}
}

func TestIngest_ObjectStorage(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(m *mocks.MockObjectStorageMockRecorder)
		expect func(t *testing.T, rawFilename string, err error)
	}{
		{
			name: "fetch object with digest",
			mock: func(m *mocks.MockObjectStorageMockRecorder) {
				gomock.InOrder(
					m.GetObjectMetadata(gomock.Any(), "telecom", "raw/signal_metrics.csv").Return(&objectstorage.ObjectMetadata{
						Key:    "raw/signal_metrics.csv",
						Digest: digest.FromBytes([]byte(mockContent)),
					}, true, nil).Times(1),
					m.GetOject(gomock.Any(), "telecom", "raw/signal_metrics.csv").Return(io.NopCloser(strings.NewReader(mockContent)), nil).Times(1),
				)
			},
			expect: func(t *testing.T, rawFilename string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				data, err := os.ReadFile(rawFilename)
				assert.NoError(err)
				assert.Equal(mockContent, string(data))
			},
		},
		{
			name: "fetch object without digest",
			mock: func(m *mocks.MockObjectStorageMockRecorder) {
				m.GetObjectMetadata(gomock.Any(), "telecom", "raw/signal_metrics.csv").Return(&objectstorage.ObjectMetadata{}, true, nil).Times(1)
				m.GetOject(gomock.Any(), "telecom", "raw/signal_metrics.csv").Return(io.NopCloser(strings.NewReader(mockContent)), nil).Times(1)
			},
			expect: func(t *testing.T, rawFilename string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.FileExists(rawFilename)
			},
		},
		{
			name: "object does not exist",
			mock: func(m *mocks.MockObjectStorageMockRecorder) {
				m.GetObjectMetadata(gomock.Any(), "telecom", "raw/signal_metrics.csv").Return(nil, false, nil).Times(1)
			},
			expect: func(t *testing.T, rawFilename string, err error) {
				assert := assert.New(t)
				assert.True(kferrors.IsNotFound(err))
				assert.ErrorContains(err, "telecom/raw/signal_metrics.csv")
				assert.NoFileExists(rawFilename)
			},
		},
		{
			name: "get metadata fails",
			mock: func(m *mocks.MockObjectStorageMockRecorder) {
				m.GetObjectMetadata(gomock.Any(), "telecom", "raw/signal_metrics.csv").Return(nil, false, errors.New("foo")).Times(1)
			},
			expect: func(t *testing.T, rawFilename string, err error) {
				assert.True(t, kferrors.IsPersistence(err))
			},
		},
		{
			name: "get object fails",
			mock: func(m *mocks.MockObjectStorageMockRecorder) {
				m.GetObjectMetadata(gomock.Any(), "telecom", "raw/signal_metrics.csv").Return(&objectstorage.ObjectMetadata{}, true, nil).Times(1)
				m.GetOject(gomock.Any(), "telecom", "raw/signal_metrics.csv").Return(nil, errors.New("foo")).Times(1)
			},
			expect: func(t *testing.T, rawFilename string, err error) {
				assert := assert.New(t)
				assert.True(kferrors.IsPersistence(err))
				assert.NoFileExists(rawFilename)
			},
		},
		{
			name: "digest mismatch",
			mock: func(m *mocks.MockObjectStorageMockRecorder) {
				m.GetObjectMetadata(gomock.Any(), "telecom", "raw/signal_metrics.csv").Return(&objectstorage.ObjectMetadata{
					Digest: digest.FromBytes([]byte("foo")),
				}, true, nil).Times(1)
				m.GetOject(gomock.Any(), "telecom", "raw/signal_metrics.csv").Return(io.NopCloser(strings.NewReader(mockContent)), nil).Times(1)
			},
			expect: func(t *testing.T, rawFilename string, err error) {
				assert := assert.New(t)
				assert.True(kferrors.IsValidation(err))
				assert.NoFileExists(rawFilename)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			objectStorage := mocks.NewMockObjectStorage(ctl)
			tc.mock(objectStorage.EXPECT())

			dir := t.TempDir()
			rawFilename := filepath.Join(dir, "raw", "signal_metrics.csv")
			i := New(storage.New(rawFilename, filepath.Join(dir, "kpi_metrics.parquet")), WithObjectStorage(objectStorage, mockSource))
			tc.expect(t, rawFilename, i.Ingest(context.Background()))
		})
	}
}
