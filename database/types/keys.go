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

package types

import (
	"encoding/binary"
)

const (
	EventBlobKeyPrefix = "ev"
	EventBlobHeadKey   = "ev_head"
	CommitTimestampKey = "metadata_commit_timestamp"
)

func EventBlobKeyUint64ToBytes(input uint64) []byte {
	ret := make([]byte, 8)
	binary.BigEndian.PutUint64(ret, input)
	return ret
}

// EventBlobKey builds the blob key for an event log entry. Sequence numbers
// are big-endian encoded so lexical key order matches append order.
func EventBlobKey(sequence uint64) []byte {
	key := []byte(EventBlobKeyPrefix)
	key = append(key, EventBlobKeyUint64ToBytes(sequence)...)
	return key
}

// EventBlobKeySequence extracts the sequence number from an event log key
func EventBlobKeySequence(key []byte) (uint64, bool) {
	prefixLen := len(EventBlobKeyPrefix)
	if len(key) != prefixLen+8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[prefixLen:]), true
}
