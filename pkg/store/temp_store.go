package store

import (
	"path/filepath"

	"src.noviq.dev/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. The Store is closed
// and the file removed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	st, err := NewStore(filepath.Join(testutil.TempDir(c), "db.bolt"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
