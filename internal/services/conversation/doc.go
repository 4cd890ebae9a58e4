// Package conversation maps a partner identifier to a usable
// conversation, creating one with a fresh key when none exists yet.
//
// Creation is safe under concurrent initiators: the conversation ID is
// derived deterministically from the sorted participant pair, so both
// sides target the same row, and the loser of the insert race adopts
// the winning row's key instead of its own.
package conversation
