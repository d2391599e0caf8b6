package catalog

import (
	"strings"
)

// Identity yields the single opaque owner key used to scope search history.
//
// The caller resolves the key from whatever authentication or session
// mechanism it uses; this module never inspects a key beyond equality. An
// empty owner key means the caller cannot be identified at all, so history is
// neither written nor readable for it.
//
// A session that is later authenticated keeps its two histories separate;
// the module does not merge them. This is a documented limitation.
type Identity interface {
	OwnerKey() string
}

const (
	userKeyPrefix    = "user:"
	sessionKeyPrefix = "session:"
)

type ownerIdentity struct {
	key string
}

func (o ownerIdentity) OwnerKey() string {
	return o.key
}

// AuthenticatedUser builds the Identity for an authenticated user id.
// The prefix keeps user keys disjoint from session keys, so a raw session
// token can never collide with a user id.
func AuthenticatedUser(userID string) Identity {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Unidentified()
	}

	return ownerIdentity{key: userKeyPrefix + userID}
}

// AnonymousSession builds the Identity for an unauthenticated caller from its
// opaque session token.
func AnonymousSession(sessionToken string) Identity {
	sessionToken = strings.TrimSpace(sessionToken)
	if sessionToken == "" {
		return Unidentified()
	}

	return ownerIdentity{key: sessionKeyPrefix + sessionToken}
}

// Unidentified builds the Identity of a caller without user id or session.
// Its owner key is empty, which disables history for the request.
func Unidentified() Identity {
	return ownerIdentity{}
}
