package cards

// Resolve maps an aspect ratio to the export surface size in pixels.
// Anything other than AspectWide resolves to the standard 4:3 surface;
// Validate rejects unknown selectors before they get here.
func Resolve(a AspectRatio) (width, height int) {
	if a == AspectWide {
		return 1280, 720
	}
	return 900, 675
}
