package internal

import "errors"

// ErrSilence is returned by commands that already reported their failure to
// the user. main exits with a non-zero code without logging it again.
var ErrSilence = errors.New("silent error")
