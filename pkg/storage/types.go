package storage

import (
	"fmt"
	"path/filepath"
	"time"
)

type DiskStorage struct {
	RootFolder string
}

func NewDiskStorage(rootFolder string) *DiskStorage {
	return &DiskStorage{
		RootFolder: rootFolder,
	}
}

// GetFileName returns the path of name inside the root folder together with
// a temporary name used while writing. Absolute names are used as is.
func (ds *DiskStorage) GetFileName(name string) (string, string) {
	fileName := name
	if !filepath.IsAbs(name) {
		fileName = filepath.Join(ds.RootFolder, name)
	}
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}
