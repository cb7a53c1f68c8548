// Package users is the user-management module: listing and CRUD over user
// records with per-request role sets attached, org invitations, soft
// removal, OTP reset and login unblock.
//
// Role attachment is batched: for any listing size there is exactly one
// role-binding read and one role read, and each user carries three
// transient caches (roles, system_roles, org_roles) valid for the request
// only.
package users
