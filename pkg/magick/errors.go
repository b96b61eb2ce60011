// Package magick wraps ImageMagick-backed file conversion behind the
// imagick build tag. Builds without the tag get a stub whose ConvertFile
// fails with ErrUnavailable, letting callers fall back to the pure-Go path.
package magick

import "errors"

// ErrUnavailable is returned by ConvertFile when the binary was built
// without imagick support.
var ErrUnavailable = errors.New("imagick support not built in")
