package platform

import "errors"

// ErrTopmostUnsupported indicates the window manager hint cannot be applied here.
var ErrTopmostUnsupported = errors.New("always on top unsupported")
