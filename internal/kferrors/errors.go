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

package kferrors

import (
	"errors"
	"fmt"
)

// Code is the category of a pipeline failure.
type Code int

const (
	// NotFound means a required input file, table or artifact is absent.
	NotFound Code = iota + 1

	// Schema means an expected column is missing or has the wrong type.
	Schema

	// Data means the data cannot support the requested operation.
	Data

	// Persistence means writing to the curated file, database or model store failed.
	Persistence

	// Validation means a row value is malformed.
	Validation
)

var codeNames = map[Code]string{
	NotFound:    "not found",
	Schema:      "schema",
	Data:        "data",
	Persistence: "persistence",
	Validation:  "validation",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("code(%d)", int(c))
}

// common errors
var (
	ErrNoViableModel  = errors.New("no viable model")
	ErrSingleClass    = errors.New("fewer than two label classes")
	ErrClassTooSmall  = errors.New("label class has fewer than two members")
	ErrMissingValue   = errors.New("missing value")
	ErrRowCountChange = errors.New("row count mismatch")
)

// Error is a categorized failure bound to the resource it happened on,
// such as a file path or a table name.
type Error struct {
	Code     Code
	Resource string
	Err      error
}

func (e *Error) Error() string {
	if e.Resource == "" {
		return fmt.Sprintf("[%s] %v", e.Code, e.Err)
	}

	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Resource, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, resource string, err error) *Error {
	return &Error{
		Code:     code,
		Resource: resource,
		Err:      err,
	}
}

func Newf(code Code, resource string, format string, a ...any) *Error {
	return &Error{
		Code:     code,
		Resource: resource,
		Err:      fmt.Errorf(format, a...),
	}
}

// CheckError reports whether any error in err's chain is an *Error with the given code.
func CheckError(err error, code Code) bool {
	if err == nil {
		return false
	}

	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsNotFound(err error) bool {
	return CheckError(err, NotFound)
}

func IsSchema(err error) bool {
	return CheckError(err, Schema)
}

func IsData(err error) bool {
	return CheckError(err, Data)
}

func IsPersistence(err error) bool {
	return CheckError(err, Persistence)
}

func IsValidation(err error) bool {
	return CheckError(err, Validation)
}
