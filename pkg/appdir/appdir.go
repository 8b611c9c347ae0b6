// Package appdir resolves the per-user application directory (~/.mozkit)
// and creates it on first use.
package appdir

import (
	"log"
	"os"
	"path"
)

const dirName = ".mozkit"

var appDirCache string

func AppDir() string {
	if appDirCache == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("%v", err)
		}
		appDirCache = path.Join(home, dirName)
	}
	return appDirCache
}

func ensureDirectory() {
	dir := AppDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		os.Mkdir(dir, 0755)
	}
}

func init() {
	ensureDirectory()
}
