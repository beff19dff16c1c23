// Copyright 2025 Blink Labs Software
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

package models

import "errors"

var ErrTimelockNotFound = errors.New("timelock not found")

// Timelock records a pending privileged operation keyed by
// (initiator, operation). Re-requesting the same pair overwrites the
// existing entry and restarts the delay. Entries are not consumed on
// execution.
type Timelock struct {
	ID         uint   `gorm:"primarykey"`
	Initiator  string `gorm:"uniqueIndex:idx_timelock_initiator_operation;size:128"`
	Operation  string `gorm:"uniqueIndex:idx_timelock_initiator_operation;size:64"`
	EndBlock   uint64
	ParamName  string `gorm:"size:128"`
	ParamValue uint64
}

func (Timelock) TableName() string {
	return "timelock"
}
