// Package authguard tracks failed login and MFA attempts per username and
// blocks further attempts once a configurable limit is reached within a
// rolling window. Counters live in a pluggable store (in-memory or Redis);
// an administrator can release a locked-out user with Unblock, which clears
// both counters.
package authguard
