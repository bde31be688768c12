package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

type lockfile struct {
	file *os.File
}

// lock takes an exclusive, non-blocking flock on <workdir>/<APP>.lock so that two
// overlapping runs (e.g. a slow cron job) do not write the same sheet concurrently.
func lock(workdir string) (*lockfile, error) {
	if err := os.MkdirAll(workdir, 0770); err != nil {
		return nil, err
	}

	path := filepath.Join(workdir, fmt.Sprintf("%s.lock", APP))

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0660)
	if err != nil {
		return nil, err
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s is already running (lockfile %v)", APP, path)
	}

	if err := f.Truncate(0); err == nil {
		fmt.Fprintf(f, "%d\n", os.Getpid())
	}

	return &lockfile{file: f}, nil
}

// release unlocks the lockfile. The file is kept so that every run locks the same inode.
func (l *lockfile) release() {
	if l == nil || l.file == nil {
		return
	}

	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		warnf("error releasing lockfile %v (%v)", l.file.Name(), err)
	}

	l.file.Close()
	l.file = nil
}
