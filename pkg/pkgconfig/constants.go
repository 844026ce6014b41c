// pkg/pkgconfig/constants.go
package pkgconfig

const (
	// DefaultBinary is the pkg-config executable name
	DefaultBinary = "pkg-config"

	// DefaultTimeout bounds a single pkg-config invocation
	DefaultTimeoutSeconds = 30
)

// DefaultModules are the pkg-config module names probed, in order.
// OpenCV 4.x registers itself as "opencv4"; 3.x used plain "opencv".
var DefaultModules = []string{"opencv4", "opencv"}
