package version

import "runtime/debug"

// SetBuildInfo swaps the build info reader and returns a restore func
func SetBuildInfo(fn func() (*debug.BuildInfo, bool)) func() {
	prev := readBuildInfo
	readBuildInfo = fn
	return func() { readBuildInfo = prev }
}
