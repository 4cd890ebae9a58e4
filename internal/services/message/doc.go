// Package message sends and receives conversation messages. Bodies are
// sealed under the conversation key before they reach the backend and
// opened on the way back; the backend only ever sees ciphertext.
package message
