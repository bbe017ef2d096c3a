package shell

import (
	"golang.org/x/sys/windows"
)

func defaultStateHome() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_LocalAppData, windows.KF_FLAG_CREATE)
}
