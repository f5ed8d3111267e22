package utils

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewRecordID returns a lowercase ULID. IDs generated by one process sort in
// creation order, which the database backend relies on for listing.
func NewRecordID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return strings.ToLower(id.String())
}

// NewUserID returns a random UUID for a new account.
func NewUserID() string {
	return uuid.NewString()
}

// NewObjectID returns the random component of a document storage key.
func NewObjectID() string {
	return uuid.NewString()
}
