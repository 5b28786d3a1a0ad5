package fileutil

import (
	"os"
)

func Exists(pathname string) bool {
	_, err := os.Stat(pathname)
	return err == nil
}

func IsDir(pathname string) bool {
	fi, err := os.Stat(pathname)
	return err == nil && fi.IsDir()
}

// NotEmpty returns true if the file at pathname exists and has at least one
// byte in it. This is written in the negative because, if the function were
// simply Empty(pathname), it would almost always need to be combined with
// Exists(pathname) and that would mean a superfluous second os.Stat(pathname).
func NotEmpty(pathname string) bool {
	fi, err := os.Stat(pathname)
	return err == nil && fi.Size() > 0
}
