// pkg/sysroot/constants.go
package sysroot

// EnvPrefix names an extra install prefix scanned before the
// conventional directories
const EnvPrefix = "CVPROBE_PREFIX"

// VersionHeader is the OpenCV 3/4 version header, relative to an
// include root
const VersionHeader = "opencv2/core/version.hpp"

// linuxPrefixes are conventional install prefixes on Linux
var linuxPrefixes = []string{
	"/usr",
	"/usr/local",
	"/opt/opencv",
}

// macosPrefixes are conventional install prefixes on macOS, covering
// both Homebrew layouts
var macosPrefixes = []string{
	"/opt/homebrew",
	"/opt/homebrew/opt/opencv",
	"/usr/local",
	"/usr/local/opt/opencv",
}

// windowsPrefixes are conventional locations of the official Windows
// release layout
var windowsPrefixes = []string{
	`C:\opencv\build`,
	`C:\tools\opencv\build`,
	`C:\Program Files\opencv\build`,
}

// includeSubdirs are include roots tried under each prefix. Debian
// and Homebrew install 4.x headers under include/opencv4.
var includeSubdirs = []string{
	"include",
	"include/opencv4",
}
