// Package notify is a thin fire-and-forget pub/sub channel used for
// operational events such as user creation and MFA resets. Publishers make
// no delivery guarantee; Redis pub/sub is the production backend, with a
// recording in-memory publisher for tests.
package notify
