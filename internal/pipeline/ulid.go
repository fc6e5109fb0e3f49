package pipeline

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid"
)

// Job IDs are ULIDs: sortable by submission time, unique within a millisecond.
var (
	ulidMu      sync.Mutex
	ulidEntropy = ulid.Monotonic(rand.Reader, 0)
)

func newJobID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}
