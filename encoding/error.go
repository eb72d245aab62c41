// Copyright 2026 Fedimint Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package encoding

import "fmt"

// DecodeError indicates malformed or truncated input on the decode path.
// It carries either a descriptive message or a wrapped lower-level cause.
// Callers should treat the wrapped cause as opaque and only rely on the
// error being a *DecodeError.
type DecodeError struct {
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return "decode error"
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewDecodeError builds a DecodeError from a descriptive message.
func NewDecodeError(format string, args ...any) *DecodeError {
	return &DecodeError{Message: fmt.Sprintf(format, args...)}
}

// WrapDecodeError builds a DecodeError from a lower-level cause. An error
// that already is a *DecodeError is returned unchanged.
func WrapDecodeError(err error) *DecodeError {
	if decodeErr, ok := err.(*DecodeError); ok {
		return decodeErr
	}
	return &DecodeError{Err: err}
}
