// Package testing moves test processes to the module root so relative paths
// (logs/, .env, sqlite files) resolve the same way they do for cmd/server.
//
// Import it for its side effect from any _test.go file:
//
//	import _ "liyu1981.xyz/dialog-service/pkg/testing"
package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	_, filename, _, _ := runtime.Caller(0)
	root := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(root); err != nil {
		panic(err)
	}

	// keep test logs out of the working tree unless a caller asked otherwise
	if _, found := os.LookupEnv("DIALOG_LOG_DIR"); !found {
		_ = os.Setenv("DIALOG_LOG_DIR", path.Join(os.TempDir(), "dialog-service-test-logs"))
	}
}
