//go:build unix

package shell

import (
	"testing"

	"src.noviq.dev/pkg/env"
	"src.noviq.dev/pkg/testutil"
)

func TestDefaultDBPath(t *testing.T) {
	testutil.Setenv(t, env.XDG_STATE_HOME, "/state")
	if p, err := defaultDBPath(); p != "/state/noviq/db.bolt" || err != nil {
		t.Errorf("with XDG_STATE_HOME: got (%q, %v)", p, err)
	}

	testutil.Unsetenv(t, env.XDG_STATE_HOME)
	testutil.Setenv(t, env.HOME, "/home/u")
	if p, err := defaultDBPath(); p != "/home/u/.local/state/noviq/db.bolt" || err != nil {
		t.Errorf("without XDG_STATE_HOME: got (%q, %v)", p, err)
	}
}

func TestOpenStore(t *testing.T) {
	dir := testutil.TempDir(t)
	st, err := openStore(dir + "/sub/db.bolt")
	if err != nil {
		t.Fatalf("openStore -> error %v", err)
	}
	st.Close()
}
