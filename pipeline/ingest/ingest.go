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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/netkpi/kpifault/internal/kferrors"
	logger "github.com/netkpi/kpifault/internal/kflog"
	"github.com/netkpi/kpifault/pipeline/config"
	"github.com/netkpi/kpifault/pipeline/storage"
	"github.com/netkpi/kpifault/pkg/digest"
	"github.com/netkpi/kpifault/pkg/fileutils"
	"github.com/netkpi/kpifault/pkg/objectstorage"
	"github.com/netkpi/kpifault/pkg/types"
)

// Ingester is the interface used for making the raw export available.
type Ingester interface {
	// Ingest fetches the raw export when a remote source is configured and
	// checks the raw file exists.
	Ingest(context.Context) error
}

type ingester struct {
	storage       storage.Storage
	objectStorage objectstorage.ObjectStorage
	config        config.ObjectStorageConfig
}

// Option is a functional option for ingester.
type Option func(i *ingester)

// WithObjectStorage sets the remote source of the raw export.
func WithObjectStorage(objectStorage objectstorage.ObjectStorage, cfg config.ObjectStorageConfig) Option {
	return func(i *ingester) {
		i.objectStorage = objectStorage
		i.config = cfg
	}
}

// New returns a new Ingester instance.
func New(storage storage.Storage, options ...Option) Ingester {
	i := &ingester{storage: storage}
	for _, opt := range options {
		opt(i)
	}

	return i
}

func (i *ingester) Ingest(ctx context.Context) error {
	log := logger.WithStage(types.StageIngest)
	filename := i.storage.RawFilename()

	if i.objectStorage != nil && i.config.Enable {
		if err := i.fetch(ctx); err != nil {
			return err
		}
	}

	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return kferrors.New(kferrors.NotFound, filename, err)
		}

		return kferrors.New(kferrors.Persistence, filename, err)
	}

	if !fileutils.IsRegularFile(filename) {
		return kferrors.Newf(kferrors.NotFound, filename, "not a regular file")
	}

	log.Infof("Raw data file found at %s (%d bytes)", filename, info.Size())
	return nil
}

// fetch downloads the configured object into the raw file.
func (i *ingester) fetch(ctx context.Context) error {
	log := logger.WithStage(types.StageIngest)
	resource := fmt.Sprintf("%s/%s", i.config.BucketName, i.config.ObjectKey)

	meta, ok, err := i.objectStorage.GetObjectMetadata(ctx, i.config.BucketName, i.config.ObjectKey)
	if err != nil {
		return kferrors.New(kferrors.Persistence, resource, err)
	}

	if !ok {
		return kferrors.Newf(kferrors.NotFound, resource, "object does not exist")
	}

	reader, err := i.objectStorage.GetOject(ctx, i.config.BucketName, i.config.ObjectKey)
	if err != nil {
		return kferrors.New(kferrors.Persistence, resource, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return kferrors.New(kferrors.Persistence, resource, err)
	}

	if meta.Digest != "" {
		matched, err := digest.Verify(meta.Digest, data)
		if err != nil {
			return kferrors.New(kferrors.Validation, resource, err)
		}

		if !matched {
			return kferrors.Newf(kferrors.Validation, resource, "digest mismatch, expected %s", meta.Digest)
		}
	}

	if err := i.storage.CreateRaw(bytes.NewReader(data)); err != nil {
		return err
	}

	log.Infof("Raw data fetched from %s %s (%d bytes)", i.config.Name, resource, len(data))
	return nil
}
