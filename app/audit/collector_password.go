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
	"strings"

	"go.qbee.io/useraudit/app/inventory"
)

// collectPasswordStatus reads raw account lock and aging status.
func collectPasswordStatus(ctx context.Context, env *Env, user inventory.User) PasswordStatus {
	return PasswordStatus{
		Status: rawCommandOutput(ctx, env, SourcePasswd, "-S", user.Name),
		Expiry: rawCommandOutput(ctx, env, SourceChage, "-l", user.Name),
	}
}

// rawCommandOutput returns trimmed output of the source's command as an opaque string.
func rawCommandOutput(ctx context.Context, env *Env, source Source, args ...string) Field[string] {
	if capability := env.Capabilities.Get(source); !capability.Available {
		return Unavailable[string](capability.Reason)
	}

	output, err := env.run(ctx, source, args...)
	if err != nil {
		return Unavailable[string](err.Error())
	}

	return Available(strings.TrimSpace(string(output)))
}
