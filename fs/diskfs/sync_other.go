//go:build !linux

package diskfs

import "os"

func datasync(f *os.File) error {
	// no fdatasync here, sync everything instead
	return f.Sync()
}
