package ports

import "os/exec"

// Launcher hands a selection of project paths to an external IDE process
type Launcher interface {
	// Launch starts ide with the given paths as arguments and returns
	// without waiting for it to exit
	Launch(ide string, paths []string) error

	// Command returns the exec.Cmd that Launch would start
	Command(ide string, paths []string) (*exec.Cmd, error)
}

// DirectoryOpener reveals a directory in the operating system's file manager
type DirectoryOpener interface {
	OpenDirectory(path string) error
}
