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

package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/term"

	"go.qbee.io/useraudit/app/log"
)

// Sink is a report destination. Nothing written to a file sink is published until Commit.
type Sink struct {
	buffer    *bufio.Writer
	file      *os.File
	tmpPath   string
	path      string
	mode      os.FileMode
	committed bool
	closed    bool
}

// Stdout returns Sink writing to the standard output.
func Stdout() *Sink {
	return &Sink{buffer: bufio.NewWriter(os.Stdout)}
}

// Open returns Sink for path with file permission mode. Empty path means the standard output.
// Writes go to a temporary file in the destination directory, which replaces path on Commit.
func Open(path string, mode os.FileMode) (*Sink, error) {
	if path == "" {
		return Stdout(), nil
	}

	dir, base := filepath.Split(path)
	if base == "" {
		return nil, fmt.Errorf("invalid output path %s: not a file", path)
	}

	if dir == "" {
		dir = "."
	}

	tmpPath := filepath.Join(dir, "."+base+"."+uuid.New().String()+".tmp")

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("error creating output file: %w", err)
	}

	sink := &Sink{
		buffer:  bufio.NewWriter(file),
		file:    file,
		tmpPath: tmpPath,
		path:    path,
		mode:    mode,
	}

	return sink, nil
}

// Write implements io.Writer.
func (sink *Sink) Write(data []byte) (int, error) {
	if sink.committed || sink.closed {
		return 0, fmt.Errorf("write to a closed output")
	}

	return sink.buffer.Write(data)
}

// IsTerminal returns true when the sink writes to a terminal.
func (sink *Sink) IsTerminal() bool {
	if sink.file != nil {
		return false
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Commit flushes written data and publishes the file at its destination path.
func (sink *Sink) Commit() error {
	if sink.committed || sink.closed {
		return fmt.Errorf("output already closed")
	}

	if err := sink.buffer.Flush(); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	if sink.file == nil {
		sink.committed = true
		return nil
	}

	if err := sink.file.Sync(); err != nil {
		return fmt.Errorf("error syncing output file: %w", err)
	}

	if err := sink.file.Chmod(sink.mode); err != nil {
		return fmt.Errorf("error setting output file mode: %w", err)
	}

	if err := sink.file.Close(); err != nil {
		return fmt.Errorf("error closing output file: %w", err)
	}

	if err := os.Rename(sink.tmpPath, sink.path); err != nil {
		return fmt.Errorf("error publishing output file: %w", err)
	}

	sink.committed = true

	log.Debugf("report written to %s", sink.path)

	return nil
}

// Close releases the sink. A file sink which wasn't committed is removed.
func (sink *Sink) Close() error {
	if sink.closed {
		return nil
	}

	sink.closed = true

	if sink.file == nil || sink.committed {
		return nil
	}

	_ = sink.file.Close()

	if err := os.Remove(sink.tmpPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing temporary output file: %w", err)
	}

	return nil
}
