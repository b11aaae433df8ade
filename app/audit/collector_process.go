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

	"go.qbee.io/useraudit/app/inventory"
)

// collectProcesses returns top resident memory consumers owned by the user.
func collectProcesses(_ context.Context, env *Env, user inventory.User) Field[[]inventory.Process] {
	capability := env.Capabilities.Get(SourceProcFS)
	if !capability.Available {
		return Unavailable[[]inventory.Process](capability.Reason)
	}

	processes, err := inventory.CollectUserProcesses(capability.Location, user.UID, env.Config.MaxProcesses)
	if err != nil {
		return Unavailable[[]inventory.Process](err.Error())
	}

	return Available(processes.Processes)
}
