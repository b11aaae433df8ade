// Copyright 2023 qbee.io
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

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineLength is the longest line ForLines will accept (log files may carry long entries).
const maxLineLength = 1024 * 1024

// ForLines runs fn for every line in the provided io.Reader.
func ForLines(reader io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var lineNumber uint64
	for scanner.Scan() {
		lineNumber++

		if err := fn(scanner.Text()); err != nil {
			return fmt.Errorf("error processing line %d: %w", lineNumber, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading line %d: %w", lineNumber+1, err)
	}

	return nil
}

// ForLinesInFile runs fn for every line in the provided filePath.
func ForLinesInFile(filePath string, fn func(string) error) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("error opening file %s: %w", filePath, err)
	}

	defer file.Close()

	if err = ForLines(file, fn); err != nil {
		return fmt.Errorf("error processing file %s: %w", filePath, err)
	}

	return nil
}

// CountNonBlankLines returns number of lines in filePath which contain anything but whitespace.
func CountNonBlankLines(filePath string) (int, error) {
	count := 0

	err := ForLinesInFile(filePath, func(line string) error {
		if strings.TrimSpace(line) != "" {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ContainsWord reports whether word occurs in line delimited by non-word characters (or line boundaries).
// Word characters are letters, digits, '_', '-' and '.', which covers portable account names.
func ContainsWord(line, word string) bool {
	if word == "" {
		return false
	}

	for offset := 0; offset <= len(line)-len(word); {
		idx := strings.Index(line[offset:], word)
		if idx < 0 {
			return false
		}

		start := offset + idx
		end := start + len(word)

		if (start == 0 || !isWordByte(line[start-1])) && (end == len(line) || !isWordByte(line[end])) {
			return true
		}

		offset = start + 1
	}

	return false
}

func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_', b == '-', b == '.':
		return true
	}

	return false
}
