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

package utils

import (
	"fmt"
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"
)

// FileOwner returns uid and gid of the path (following symlinks).
func FileOwner(path string) (uint32, uint32, error) {
	fileStat := new(unix.Stat_t)

	if err := unix.Stat(path, fileStat); err != nil {
		return 0, 0, fmt.Errorf("cannot check file ownership: %s - %w", path, err)
	}

	return fileStat.Uid, fileStat.Gid, nil
}

// OwnerName returns user name for uid, or the numeric uid when it cannot be resolved.
func OwnerName(uid uint32) string {
	uidString := strconv.FormatUint(uint64(uid), 10)

	userInfo, err := user.LookupId(uidString)
	if err != nil {
		return uidString
	}

	return userInfo.Username
}

// IsReadable reports whether the current process can read the path.
func IsReadable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}
