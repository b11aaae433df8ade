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
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"go.qbee.io/useraudit/app/inventory"
	"go.qbee.io/useraudit/app/utils"
)

// AuthorizedKeysPath returns location of user's authorized_keys file.
func AuthorizedKeysPath(user inventory.User) string {
	return filepath.Join(user.HomeDirectory, ".ssh", "authorized_keys")
}

// collectSSHKeys counts authorized keys of the user. Missing file is a legitimate absence of keys.
func collectSSHKeys(_ context.Context, _ *Env, user inventory.User) Field[SSHKeyInfo] {
	if user.HomeDirectory == "" {
		return Available(SSHKeyInfo{})
	}

	keysFilePath := AuthorizedKeysPath(user)

	fileInfo, err := os.Stat(keysFilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return Available(SSHKeyInfo{})
		}

		return Unavailable[SSHKeyInfo](err.Error())
	}

	var keyCount int
	if keyCount, err = utils.CountNonBlankLines(keysFilePath); err != nil {
		return Unavailable[SSHKeyInfo](err.Error())
	}

	keyInfo := SSHKeyInfo{
		KeyCount:     keyCount,
		LastModified: fileInfo.ModTime().UTC().Format(time.RFC3339),
	}

	return Available(keyInfo)
}
