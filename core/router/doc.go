// Package router implements the routing core: a per-method trie over path
// segments with an exact-match fast path for static routes.
//
// Patterns are /-delimited. A :name segment captures one non-empty path
// segment under that name; a trailing * captures the whole remainder under
// the key "*". Matching priority at every depth is static > param > wildcard,
// with backtracking, so /users/admin beats /users/:id beats /users/* for a
// request to /users/admin no matter the registration order.
//
// Trailing slashes are significant: /users and /users/ are different routes.
//
// Route tables are write-once-at-startup, read-many-during-serving. The
// caller must finish all Register and Mount calls before serving traffic;
// concurrent lookups then need no locking.
package router
