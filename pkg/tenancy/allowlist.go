package tenancy

import "strings"

// AllowList is the single source of truth for which identities may hold
// platform-owner power. A principal is treated as a platform owner only
// when its role is RolePlatformOwner AND its email is present here;
// either condition alone is insufficient. This guards against a
// tampered role field granting cross-tenant visibility.
//
// The list is built once at startup and is immutable afterwards; there
// is deliberately no way to mutate it at runtime.
type AllowList struct {
	emails map[string]struct{}
}

// NewAllowList builds an allow-list from the given emails. Matching is
// case-insensitive and ignores surrounding whitespace. Empty entries
// are dropped.
func NewAllowList(emails ...string) AllowList {
	m := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		m[e] = struct{}{}
	}
	return AllowList{emails: m}
}

// Contains reports whether the email is allow-listed.
func (a AllowList) Contains(email string) bool {
	if len(a.emails) == 0 {
		return false
	}
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Len returns the number of allow-listed identities.
func (a AllowList) Len() int { return len(a.emails) }
