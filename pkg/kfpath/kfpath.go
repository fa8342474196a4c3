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

package kfpath

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

const (
	// lockFileName guards the work home against concurrent batch runs.
	lockFileName = "kpifault.lock"
)

var (
	DefaultWorkHome     = "."
	DefaultWorkHomeMode = os.FileMode(0755)
	DefaultDataDirMode  = os.FileMode(0755)
)

// Kfpath is the interface used for init project path.
type Kfpath interface {
	WorkHome() string
	WorkHomeMode() fs.FileMode
	RawDir() string
	CuratedDir() string
	DatabaseDir() string
	DataDirMode() fs.FileMode
	ModelDir() string
	LogDir() string
	LockFile() string
}

// kfpath provides init project path function.
type kfpath struct {
	workHome     string
	workHomeMode fs.FileMode
	dataDirMode  fs.FileMode
	logDir       string
}

// Option is a functional option for configuring the kfpath.
type Option func(d *kfpath)

// WithWorkHome set the workhome directory.
func WithWorkHome(dir string) Option {
	return func(d *kfpath) {
		d.workHome = dir
	}
}

// WithWorkHomeMode sets the workHome directory mode
func WithWorkHomeMode(mode fs.FileMode) Option {
	return func(d *kfpath) {
		d.workHomeMode = mode
	}
}

// WithDataDirMode sets the mode of data and model directories.
func WithDataDirMode(mode fs.FileMode) Option {
	return func(d *kfpath) {
		d.dataDirMode = mode
	}
}

// WithLogDir set the log directory, defaults to logs under workhome.
func WithLogDir(dir string) Option {
	return func(d *kfpath) {
		d.logDir = dir
	}
}

// New returns a new kfpath interface and creates its directories.
func New(options ...Option) (Kfpath, error) {
	d := &kfpath{
		workHome:     DefaultWorkHome,
		workHomeMode: DefaultWorkHomeMode,
		dataDirMode:  DefaultDataDirMode,
	}

	for _, opt := range options {
		opt(d)
	}

	if d.logDir == "" {
		d.logDir = filepath.Join(d.workHome, "logs")
	}

	var errs *multierror.Error

	// Create workhome directory.
	if err := os.MkdirAll(d.workHome, d.workHomeMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create log directory.
	if err := os.MkdirAll(d.logDir, fs.FileMode(0700)); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create data and model directories.
	for _, dir := range []string{d.RawDir(), d.CuratedDir(), d.DatabaseDir(), d.ModelDir()} {
		if err := os.MkdirAll(dir, d.dataDirMode); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *kfpath) WorkHome() string {
	return d.workHome
}

func (d *kfpath) WorkHomeMode() fs.FileMode {
	return d.workHomeMode
}

func (d *kfpath) RawDir() string {
	return filepath.Join(d.workHome, "data", "raw")
}

func (d *kfpath) CuratedDir() string {
	return filepath.Join(d.workHome, "data", "curated")
}

func (d *kfpath) DatabaseDir() string {
	return filepath.Join(d.workHome, "data", "db")
}

func (d *kfpath) DataDirMode() fs.FileMode {
	return d.dataDirMode
}

func (d *kfpath) ModelDir() string {
	return filepath.Join(d.workHome, "models")
}

func (d *kfpath) LogDir() string {
	return d.logDir
}

func (d *kfpath) LockFile() string {
	return filepath.Join(d.workHome, lockFileName)
}
