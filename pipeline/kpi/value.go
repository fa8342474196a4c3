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

package kpi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Float is a measurement that may be missing.
type Float struct {
	Value float64
	Valid bool
}

// NewFloat returns a present measurement.
func NewFloat(v float64) Float {
	return Float{Value: v, Valid: true}
}

// FloatFromPtr maps nil to a missing measurement.
func FloatFromPtr(v *float64) Float {
	if v == nil {
		return Float{}
	}

	return NewFloat(*v)
}

// Ptr returns nil for a missing measurement.
func (f Float) Ptr() *float64 {
	if !f.Valid {
		return nil
	}

	v := f.Value
	return &v
}

// IsZero reports whether f is a present exact 0.0.
func (f Float) IsZero() bool {
	return f.Valid && f.Value == 0
}

// UnmarshalCSV treats an empty cell and NaN as missing.
func (f *Float) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*f = Float{}
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}

	if math.IsNaN(v) {
		*f = Float{}
		return nil
	}

	*f = NewFloat(v)
	return nil
}

func (f Float) MarshalCSV() (string, error) {
	if !f.Valid {
		return "", nil
	}

	return strconv.FormatFloat(f.Value, 'f', -1, 64), nil
}

func (f Float) String() string {
	if !f.Valid {
		return "<missing>"
	}

	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

// timestampLayouts are tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"2006-01-02",
}

var errEmptyTimestamp = errors.New("empty timestamp")

// Timestamp is a measurement time read from text.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s with the first matching known layout, in UTC
// unless s carries an offset.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyTimestamp
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t *Timestamp) UnmarshalCSV(s string) error {
	v, err := ParseTimestamp(s)
	if err != nil {
		return err
	}

	t.Time = v
	return nil
}

func (t Timestamp) MarshalCSV() (string, error) {
	return t.Time.Format("2006-01-02 15:04:05"), nil
}
