package note

import (
	"strconv"
	"sync/atomic"
	"time"
)

// idCounter disambiguates ids generated within the same millisecond.
var idCounter atomic.Uint64

// GenerateID returns a timestamp-derived id that is unique within the process.
func GenerateID() string {
	seq := idCounter.Add(1)
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + strconv.FormatUint(seq, 36)
}
