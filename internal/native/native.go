// Completion: 100% - Platform support complete

// Package native owns everything that touches raw addresses: executable
// pages, opaque handles passed through generated code, and the bridge that
// enters native code and lets it call back into Go.
package native

import "tlog.app/go/errors"

// ErrUnsupported is returned on platforms without executable-page and
// native-call support.
var ErrUnsupported = errors.New("native code is not supported on this platform")
