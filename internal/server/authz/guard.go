// Package authz is the authorization guard: pure decision functions over
// (caller identity, resource owner / blob key).
package authz

import (
	"strings"

	"github.com/Tejani8980/job-app-tracker-backend/internal/common"
)

// CheckOwner requires resourceOwner to be the caller. A mismatch is reported
// as not-found, deliberately indistinguishable from a missing record, so
// callers cannot probe which IDs exist.
func CheckOwner(callerEmail, resourceOwner string) error {
	if resourceOwner != callerEmail {
		return common.ErrorNotFound
	}
	return nil
}

// CheckBlobKey requires a client-supplied blob key to start with the
// caller's own prefix. Here the violation is reported as forbidden: the key
// itself is attacker-controlled input, not an opaque ID, so denial leaks
// nothing.
func CheckBlobKey(callerEmail, key string) error {
	if !strings.HasPrefix(key, callerEmail+"/") {
		return common.ErrorForbidden
	}
	return nil
}
