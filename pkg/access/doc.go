// Package access provides the pure authorization decisions of the
// tenant-isolation core: may this context touch tenant X, may it cross
// tenant boundaries, is it a platform owner.
//
// Every function is side-effect free and database free, which keeps the
// decisions independently testable and keeps call sites from growing
// their own ad-hoc "is this user special" checks. All denials unwrap to
// ErrAccessDenied and report the same generic message to the caller,
// avoiding tenant-enumeration side channels; the denied operation and
// target are still available on DeniedError for audit logging.
package access
