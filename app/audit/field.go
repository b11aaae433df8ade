// Copyright 2024 qbee.io
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
//
// SPDX-License-Identifier: Apache-2.0

package audit

// UnavailableText is how an unavailable field is rendered in reports.
//
// A string field may legitimately hold the same text, e.g. a home directory owned by an account named
// "unavailable". Fields collected from one source become unavailable together, so the string is a marker
// only when a non-string field of the same group (home_exists, ssh_key_count) is rendered as the marker too.
// The text layout also prints the reason next to the marker.
const UnavailableText = "unavailable"

// Field is a collector outcome: either an available value or an unavailable marker carrying a reason.
// Zero value is unavailable.
type Field[T any] struct {
	value     T
	available bool
	reason    string
}

// Available returns Field holding value.
func Available[T any](value T) Field[T] {
	return Field[T]{value: value, available: true}
}

// Unavailable returns Field marked as unavailable for the reason.
func Unavailable[T any](reason string) Field[T] {
	return Field[T]{reason: reason}
}

// Value returns field's value and true when available, or zero value and false otherwise.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.available
}

// IsAvailable returns true when the field holds a value.
func (f Field[T]) IsAvailable() bool {
	return f.available
}

// Reason returns why the field is unavailable. Empty for available fields.
func (f Field[T]) Reason() string {
	return f.reason
}
