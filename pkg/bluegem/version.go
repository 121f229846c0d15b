package bluegem

import (
	"fmt"
	"runtime"
)

// Version is the library version, reported in the User-Agent header of
// every request.
const Version = "0.1.0"

func defaultUserAgent() string {
	return fmt.Sprintf("csbluegem-go/%s (%s)", Version, runtime.Version())
}
