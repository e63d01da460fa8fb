package format

import "os"

// File and directory permission modes used for everything dockhand writes.
const (
	FileUserReadWrite os.FileMode = 0o600
	DirUserGroupRead  os.FileMode = 0o750
)
