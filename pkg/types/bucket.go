package types

import "fmt"

// Bucket names one of the classification targets of a walk
type Bucket string

const (
	BucketAppIcons        Bucket = "appIcons"
	BucketCSSFiles        Bucket = "cssFiles"
	BucketJSFiles         Bucket = "jsFiles"
	BucketLaunchImages    Bucket = "launchImages"
	BucketLaunchLogos     Bucket = "launchLogos"
	BucketImageAssets     Bucket = "imageAssets"
	BucketResourcesToCopy Bucket = "resourcesToCopy"
)

// AllBuckets lists every bucket in presentation order
var AllBuckets = []Bucket{
	BucketAppIcons,
	BucketCSSFiles,
	BucketJSFiles,
	BucketLaunchImages,
	BucketLaunchLogos,
	BucketImageAssets,
	BucketResourcesToCopy,
}

// String returns the bucket name
func (b Bucket) String() string {
	return string(b)
}

// Valid reports whether b is one of AllBuckets
func (b Bucket) Valid() bool {
	for _, known := range AllBuckets {
		if b == known {
			return true
		}
	}
	return false
}

// Description returns a human-readable description of what ends up in the bucket
func (b Bucket) Description() string {
	switch b {
	case BucketAppIcons:
		return "Root-level images matching the configured app icon name"
	case BucketCSSFiles:
		return "Stylesheets"
	case BucketJSFiles:
		return "Scripts bound for the script pipeline"
	case BucketLaunchImages:
		return "Root-level Default*.png splash images"
	case BucketLaunchLogos:
		return "LaunchLogo images for the dynamic splash screen"
	case BucketImageAssets:
		return "Images injected into the asset catalog when app thinning is on"
	case BucketResourcesToCopy:
		return "Everything copied verbatim"
	default:
		return fmt.Sprintf("unknown bucket %q", string(b))
	}
}

// ParseBucket converts a bucket name to a Bucket
func ParseBucket(s string) (Bucket, error) {
	b := Bucket(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown bucket: %s", s)
	}
	return b, nil
}
