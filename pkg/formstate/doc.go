// Package formstate holds the in-memory state of one registration form
// session: raw input values, touched and dirty flags, the current ErrorMap
// and a render counter local to the controller.
//
// A Controller is owned by exactly one session (an HTTP request, a terminal
// prompt run) and is not safe for concurrent use. Every mutation triggers a
// re-render, which increments the counter and notifies subscribers with a
// Snapshot. Mount resets the counter.
package formstate
