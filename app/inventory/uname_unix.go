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

//go:build unix

package inventory

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// HostName returns the node name reported by the uname syscall.
// Falls back to os.Hostname when the node name is empty.
func HostName() (string, error) {
	utsname := new(unix.Utsname)

	if err := unix.Uname(utsname); err != nil {
		return "", fmt.Errorf("error calling Uname syscall: %w", err)
	}

	if nodeName := unix.ByteSliceToString(utsname.Nodename[:]); nodeName != "" {
		return nodeName, nil
	}

	return os.Hostname()
}
