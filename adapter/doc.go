// Package adapter provides pipeline stages. Every stage exclusively owns its
// upstream source and returns the upstream terminal result for all
// subsequent pulls once it is reached.
//
// Stages borrow the upstream buffer for exactly one pull. Amplify modifies
// the borrowed buffer in place, the rest write into their own storage.
package adapter
