// SPDX-License-Identifier: MIT
package nodetree

import "errors"

// Shared errors.
var (
	ErrPanicked = errors.New("recovery from panic")
)
