// Package actor extracts the acting user identity from a request. Identity
// propagation (authn) is owned by the gateway in front of this service; here
// only the numeric id is read for the audit trail.
package actor

import (
	"net/http"
	"strconv"
)

const Header = "X-Actor-Id"

// FromRequest returns the acting user id, or 0 for an anonymous/system call.
func FromRequest(r *http.Request) int64 {
	id, err := strconv.ParseInt(r.Header.Get(Header), 10, 64)
	if err != nil {
		return 0
	}

	return id
}
