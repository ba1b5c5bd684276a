// Package fileutil holds file permission constants shared by writers.
package fileutil

import "os"

// OwnerReadWrite is the permission mode for flattened output files, which
// may carry the same sensitive data as their input (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600
