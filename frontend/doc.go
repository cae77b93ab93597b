// Package frontend contains the object and logic to define and compile reversible circuits
package frontend

import "errors"

// ErrWorkspaceLeak triggered when Define returns with workspace qubits still acquired
var ErrWorkspaceLeak = errors.New("workspace qubits still acquired after Define")
