// Copyright 2026 Blink Labs Software
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

package database

import (
	"encoding/binary"
	"encoding/json"
	"errors"

	"github.com/benedict-drio/decentralized-autonomous-organization/database/types"
)

const EventInitialSequence uint64 = 1

// EventRecord is a single entry in the durable governance event log.
// Sequence numbers are assigned on append, starting at 1, with no gaps.
type EventRecord struct {
	Sequence  uint64          `json:"sequence"`
	Name      string          `json:"name"`
	Initiator string          `json:"initiator,omitempty"`
	Block     uint64          `json:"block"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// AppendEvent appends an event to the durable event log, assigning the next
// sequence number to ev.Sequence
func (d *Database) AppendEvent(ev *EventRecord, txn *Txn) error {
	if ev == nil {
		return errors.New("event cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.BlobTxn(true)
		owned = true
		defer txn.Rollback() //nolint:errcheck
	}
	blobTxn := txn.Blob()
	if blobTxn == nil {
		return types.ErrNilTxn
	}
	blob := txn.DB().Blob()
	if blob == nil {
		return types.ErrBlobStoreUnavailable
	}
	// Assign the next sequence number
	head, err := eventHeadTxn(txn)
	if err != nil {
		return err
	}
	ev.Sequence = head + 1
	val, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := blob.Set(blobTxn, types.EventBlobKey(ev.Sequence), val); err != nil {
		return err
	}
	// Advance the head pointer
	if err := blob.Set(
		blobTxn,
		[]byte(types.EventBlobHeadKey),
		types.EventBlobKeyUint64ToBytes(ev.Sequence),
	); err != nil {
		return err
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// EventHead returns the sequence number of the most recent event, or 0 when
// the log is empty
func (d *Database) EventHead(txn *Txn) (uint64, error) {
	if txn == nil {
		txn = d.BlobTxn(false)
		defer txn.Rollback() //nolint:errcheck
	}
	return eventHeadTxn(txn)
}

func eventHeadTxn(txn *Txn) (uint64, error) {
	if txn == nil {
		return 0, types.ErrNilTxn
	}
	blobTxn := txn.Blob()
	if blobTxn == nil {
		return 0, types.ErrNilTxn
	}
	blob := txn.DB().Blob()
	if blob == nil {
		return 0, types.ErrBlobStoreUnavailable
	}
	val, err := blob.Get(blobTxn, []byte(types.EventBlobHeadKey))
	if err != nil {
		// An empty log has no head pointer
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if len(val) != 8 {
		return 0, errors.New("malformed event head value")
	}
	return binary.BigEndian.Uint64(val), nil
}

// GetEvents returns up to count events starting at the given sequence
// number in append order
func (d *Database) GetEvents(
	from uint64,
	count int,
	txn *Txn,
) ([]EventRecord, error) {
	if count <= 0 {
		return []EventRecord{}, nil
	}
	if txn == nil {
		txn = d.BlobTxn(false)
		defer txn.Rollback() //nolint:errcheck
	}
	ret := make([]EventRecord, 0, count)
	blobTxn := txn.Blob()
	if blobTxn == nil {
		return ret, types.ErrNilTxn
	}
	blob := txn.DB().Blob()
	if blob == nil {
		return ret, types.ErrBlobStoreUnavailable
	}
	if from < EventInitialSequence {
		from = EventInitialSequence
	}
	iterOpts := types.BlobIteratorOptions{
		Prefix: []byte(types.EventBlobKeyPrefix),
	}
	it := blob.NewIterator(blobTxn, iterOpts)
	if it == nil {
		return ret, errors.New("blob iterator is nil")
	}
	defer it.Close()
	for it.Seek(types.EventBlobKey(from)); it.ValidForPrefix([]byte(types.EventBlobKeyPrefix)); it.Next() {
		if len(ret) >= count {
			break
		}
		item := it.Item()
		if item == nil {
			continue
		}
		// Skip the head pointer and any other non-event keys
		if _, ok := types.EventBlobKeySequence(item.Key()); !ok {
			continue
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return ret, err
		}
		var tmpEvent EventRecord
		if err := json.Unmarshal(val, &tmpEvent); err != nil {
			return ret, err
		}
		ret = append(ret, tmpEvent)
	}
	if err := it.Err(); err != nil {
		return ret, err
	}
	return ret, nil
}
