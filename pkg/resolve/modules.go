// pkg/resolve/modules.go
package resolve

import (
	"github.com/vision-bindings/cvprobe/pkg/core"
)

// Module sets per version family. The binding layer generates one hub
// per module; the emitter uses these names for per-module link names
// when an installation has no umbrella opencv_world library.

var modules32 = []string{
	"core", "calib3d", "features2d", "flann", "highgui", "imgcodecs",
	"imgproc", "ml", "objdetect", "photo", "shape", "stitching",
	"video", "videoio", "videostab",
}

var modules34 = []string{
	"core", "calib3d", "dnn", "features2d", "flann", "highgui",
	"imgcodecs", "imgproc", "ml", "objdetect", "photo", "shape",
	"stitching", "superres", "video", "videoio", "videostab",
}

var modules4 = []string{
	"core", "calib3d", "dnn", "features2d", "flann", "gapi", "highgui",
	"imgcodecs", "imgproc", "ml", "objdetect", "photo", "stitching",
	"video", "videoio",
}

// ContribModules are shipped only by contrib-enabled builds
var ContribModules = []string{
	"xfeatures2d", "aruco", "bgsegm", "bioinspired", "img_hash",
	"line_descriptor", "tracking", "xphoto",
}

// BaseModules returns the module names of a version family
func BaseModules(feature core.VersionFeature) []string {
	switch feature {
	case core.FeatureOpenCV32:
		return modules32
	case core.FeatureOpenCV34:
		return modules34
	default:
		return modules4
	}
}

// LinkNames renders module link names, e.g. "opencv_core"
func LinkNames(feature core.VersionFeature, contrib bool) []string {
	base := BaseModules(feature)
	names := make([]string, 0, len(base)+len(ContribModules))
	for _, m := range base {
		names = append(names, "opencv_"+m)
	}
	if contrib {
		for _, m := range ContribModules {
			names = append(names, "opencv_"+m)
		}
	}
	return names
}
