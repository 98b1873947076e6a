// Package store implements the clinic's persistent store: collection-scoped
// CRUD and query helpers over a key-value backend. Each record is serialized
// as JSON under its own key, "<collection>/<id>", so point lookups are O(1)
// and collection reads are ordered prefix scans.
package store

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/CrissP24/clinica-joya-sub000/pkg/logger"
	"github.com/CrissP24/clinica-joya-sub000/pkg/metrics"
	"github.com/CrissP24/clinica-joya-sub000/pkg/storage"
	"github.com/CrissP24/clinica-joya-sub000/pkg/types"
)

// Collection key prefixes.
const (
	prefixPatients      = "patients/"
	prefixRecords       = "medical_records/"
	prefixAppointments  = "appointments/"
	prefixCertificates  = "certificates/"
	prefixExams         = "laboratory_exams/"
	prefixNotifications = "notifications/"
	prefixUsers         = "users/"

	// sessionKey holds the serialized session of the signed-in user. It is
	// written by the auth layer, and cleared by Reset along with everything
	// else.
	sessionKey = "session/current"
)

var collectionPrefixes = []string{
	prefixPatients,
	prefixRecords,
	prefixAppointments,
	prefixCertificates,
	prefixExams,
	prefixNotifications,
	prefixUsers,
}

// Store provides collection-scoped CRUD and queries over a storage backend.
// It is an explicitly constructed object: callers choose the backend.
type Store struct {
	backend storage.Backend
	logger  *logger.Logger
}

// New creates a store on top of backend
func New(backend storage.Backend, log *logger.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  log,
	}
}

// newID generates a record id: base-36 timestamp plus a random suffix.
// Uniqueness is probabilistic, not guaranteed; there is no collision check.
func (s *Store) newID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// clock so id generation cannot error out.
		binary.BigEndian.PutUint32(buf[:], uint32(time.Now().UnixNano()))
	}
	suffix := strconv.FormatUint(uint64(binary.BigEndian.Uint32(buf[:])), 36)

	return ts + suffix
}

// timestamp returns the current time as an RFC 3339 string with nanosecond
// precision, so consecutive writes get strictly increasing updatedAt values.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// putJSON serializes v and writes it under key. Failures propagate to the
// caller instead of being swallowed, so in-memory and persisted state cannot
// silently diverge.
func (s *Store) putJSON(key string, v interface{}) (err error) {
	defer func() { metrics.RecordStoreOperation("put", err) }()

	data, err := json.Marshal(v)
	if err != nil {
		return types.NewStorageError(types.ErrCodeStorageFailed, "failed to serialize record", err)
	}
	if err := s.backend.Put(key, data); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("storage write failed")
		return types.NewStorageError(types.ErrCodeStorageFailed, "failed to persist record", err)
	}
	return nil
}

// getJSON reads and decodes one record
func getJSON[T any](s *Store, key string) (*T, error) {
	data, err := s.backend.Get(key)
	metrics.RecordStoreOperation("get", err)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "record not found")
	}
	if err != nil {
		return nil, types.NewStorageError(types.ErrCodeStorageFailed, "failed to read record", err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("stored record could not be decoded")
		return nil, types.NewDecodeError(key, err)
	}
	return &v, nil
}

// listJSON scans a collection prefix and decodes every record. A record that
// fails to decode is skipped and reported through the returned decode error;
// the decoded remainder is still returned so callers can fail open.
func listJSON[T any](s *Store, prefix string) ([]*T, error) {
	kvs, err := s.backend.List(prefix)
	metrics.RecordStoreOperation("list", err)
	if err != nil {
		return nil, types.NewStorageError(types.ErrCodeStorageFailed, "failed to scan collection", err)
	}

	var out []*T
	var decodeErr error
	for _, kv := range kvs {
		var v T
		if err := json.Unmarshal(kv.Value, &v); err != nil {
			s.logger.WithError(err).WithField("key", kv.Key).Warn("skipping undecodable record")
			decodeErr = types.NewDecodeError(kv.Key, err)
			continue
		}
		out = append(out, &v)
	}
	return out, decodeErr
}

// deleteKey removes one record and reports whether it existed
func (s *Store) deleteKey(key string) (bool, error) {
	existed, err := s.backend.Delete(key)
	metrics.RecordStoreOperation("delete", err)
	if err != nil {
		return false, types.NewStorageError(types.ErrCodeStorageFailed, "failed to delete record", err)
	}
	return existed, nil
}

// Reset clears every collection and the session key. It exists for test and
// demo setups only; there is no undo.
func (s *Store) Reset() error {
	for _, prefix := range collectionPrefixes {
		kvs, err := s.backend.List(prefix)
		if err != nil {
			return types.NewStorageError(types.ErrCodeStorageFailed, "failed to scan collection during reset", err)
		}
		for _, kv := range kvs {
			if _, err := s.backend.Delete(kv.Key); err != nil {
				return types.NewStorageError(types.ErrCodeStorageFailed, "failed to delete record during reset", err)
			}
		}
	}

	if _, err := s.backend.Delete(sessionKey); err != nil {
		return types.NewStorageError(types.ErrCodeStorageFailed, "failed to clear session during reset", err)
	}

	s.logger.Warn("store reset: all collections cleared")
	return nil
}
