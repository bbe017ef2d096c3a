package store

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	"src.noviq.dev/pkg/store/storedefs"
)

const bucketHistory = "history"

func init() {
	initDB["create the history bucket"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		return err
	}
}

// AddEntry appends a statement to the history and returns its sequence
// number. Sequence numbers start from 1.
func (s *dbStore) AddEntry(text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), []byte(text))
	})
	return int(seq), err
}

// Entry returns the statement with the given sequence number, or
// storedefs.ErrNoEntry.
func (s *dbStore) Entry(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketHistory)).Get(seqKey(uint64(seq)))
		if v == nil {
			return storedefs.ErrNoEntry
		}
		text = string(v)
		return nil
	})
	return text, err
}

// Recent returns at most n of the newest entries, oldest first.
func (s *dbStore) Recent(n int) ([]storedefs.Entry, error) {
	var entries []storedefs.Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketHistory)).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			entries = append(entries, storedefs.Entry{Seq: int(seqOf(k)), Text: string(v)})
		}
		return nil
	})
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, err
}

// Trim deletes the oldest entries, so that at most keep entries remain. The
// sequence numbers of the remaining entries do not change.
func (s *dbStore) Trim(keep int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		// Deleting while iterating with a cursor skips keys, so the keys are
		// collected first.
		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		if len(keys) <= keep {
			return nil
		}
		old := keys[:len(keys)-keep]
		for _, k := range old {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear deletes all entries. Sequence numbers keep growing from where they
// were.
func (s *dbStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		seq := b.Sequence()
		if err := tx.DeleteBucket([]byte(bucketHistory)); err != nil {
			return err
		}
		b, err := tx.CreateBucket([]byte(bucketHistory))
		if err != nil {
			return err
		}
		return b.SetSequence(seq)
	})
}

func seqKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func seqOf(key []byte) uint64 { return binary.BigEndian.Uint64(key) }
