package domain

import "errors"

// ErrNotFound is returned when a referenced row (stock lot, tire) no
// longer exists, e.g. it was deleted via the web UI between the
// confirmation step and the commit.
var ErrNotFound = errors.New("not found")
