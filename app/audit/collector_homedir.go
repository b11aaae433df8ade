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

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.qbee.io/useraudit/app/inventory"
	"go.qbee.io/useraudit/app/utils"
)

// collectHomeDir audits ownership and permissions of user's home directory.
// Missing home directory is not an error: all fields stay empty.
func collectHomeDir(_ context.Context, _ *Env, user inventory.User) Field[HomeDirAudit] {
	if user.HomeDirectory == "" {
		return Available(HomeDirAudit{})
	}

	fileInfo, err := os.Stat(user.HomeDirectory)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Available(HomeDirAudit{})
		}

		return Unavailable[HomeDirAudit](err.Error())
	}

	if !fileInfo.IsDir() {
		return Available(HomeDirAudit{})
	}

	var uid uint32
	if uid, _, err = utils.FileOwner(user.HomeDirectory); err != nil {
		return Unavailable[HomeDirAudit](err.Error())
	}

	mode := FormatMode(fileInfo.Mode())

	homeDir := HomeDirAudit{
		Exists:        true,
		Owner:         utils.OwnerName(uid),
		Mode:          mode,
		WorldWritable: WorldWritable(mode),
		OwnerIsRoot:   uid == 0,
	}

	return Available(homeDir)
}

// FormatMode returns permission and special bits as a 4-digit octal string, the way `stat -c %a` does, e.g. "2750".
func FormatMode(mode fs.FileMode) string {
	bits := uint32(mode.Perm())

	if mode&fs.ModeSetuid != 0 {
		bits |= 04000
	}

	if mode&fs.ModeSetgid != 0 {
		bits |= 02000
	}

	if mode&fs.ModeSticky != 0 {
		bits |= 01000
	}

	return fmt.Sprintf("%04o", bits)
}

// WorldWritable returns true when the last octal digit of mode has the write bit set (2, 3, 6 or 7).
// Sticky bit and ACLs are not taken into account.
func WorldWritable(mode string) bool {
	if mode == "" {
		return false
	}

	switch mode[len(mode)-1] {
	case '2', '3', '6', '7':
		return true
	}

	return false
}
