package patterns

import (
	"regexp"
	"strings"
)

const (
	// DefaultAppIcon is the icon base filename used when none is configured
	DefaultAppIcon = "appicon.png"

	// DefaultIgnoreDirs matches VCS and OS-junk directory names
	DefaultIgnoreDirs = `^(\.svn|_svn|\.git|\.hg|\.?[Cc][Vv][Ss]|\.bzr|\$RECYCLE\.BIN)$`

	// DefaultIgnoreFiles matches editor, VCS and OS-junk file names
	DefaultIgnoreFiles = `^(\.gitignore|\.npmignore|\.cvsignore|\.DS_Store|\._.*|[Tt]humbs.db|\.vspscc|\.vssscc|\.sublime-project|\.sublime-workspace|\.project|\.tmproj)$`
)

var (
	// launchImageRe: Default[-Landscape|-Portrait][-<n>h][@<2-9>x].png
	launchImageRe = regexp.MustCompile(`^(Default(-(Landscape|Portrait))?(-[0-9]+h)?(@[2-9]x)?)\.png$`)

	// launchLogoRe: LaunchLogo[@2x|@3x][~iphone|~ipad].(png|jpg)
	launchLogoRe = regexp.MustCompile(`^(LaunchLogo)(@([23])x)?(~(iphone|ipad))?\.(png|jpg)$`)

	// bundleFileRe matches relative paths with a directory segment ending in .bundle
	bundleFileRe = regexp.MustCompile(`.+\.bundle/.+`)
)

// LogoMatch holds the captures of a launch logo match
type LogoMatch struct {
	Scale  string
	Device string
}

// Set is the immutable collection of classification matchers
type Set struct {
	appIconName string
	appIcon     *regexp.Regexp
}

// NewSet builds the matchers for the given app icon base filename.
// An empty name falls back to DefaultAppIcon.
func NewSet(appIconName string) *Set {
	if appIconName == "" {
		appIconName = DefaultAppIcon
	}
	return &Set{
		appIconName: appIconName,
		appIcon:     AppIconPattern(appIconName),
	}
}

// AppIconPattern derives the root-level icon matcher from the configured
// icon filename: a trailing ".png" is dropped, the rest is escaped
// literally, and anything between it and ".png" is captured as the tag.
func AppIconPattern(appIconName string) *regexp.Regexp {
	base := strings.TrimSuffix(appIconName, ".png")
	return regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `(.*)\.png$`)
}

// AppIconName returns the configured icon filename
func (s *Set) AppIconName() string {
	return s.appIconName
}

// MatchAppIcon reports whether filename is an app icon and returns its tag
func (s *Set) MatchAppIcon(filename string) (string, bool) {
	m := s.appIcon.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MatchLaunchImage reports whether filename follows the Default*.png convention
func (s *Set) MatchLaunchImage(filename string) bool {
	return launchImageRe.MatchString(filename)
}

// MatchLaunchLogo reports whether filename is a LaunchLogo image and
// returns its scale and device captures
func (s *Set) MatchLaunchLogo(filename string) (LogoMatch, bool) {
	m := launchLogoRe.FindStringSubmatch(filename)
	if m == nil {
		return LogoMatch{}, false
	}
	return LogoMatch{Scale: m[3], Device: m[5]}, true
}

// InBundle reports whether the slash-separated relative path sits inside
// a *.bundle directory
func (s *Set) InBundle(relPath string) bool {
	return bundleFileRe.MatchString(relPath)
}

// Compile compiles an optional user-supplied pattern. The empty string
// yields a nil matcher, which matches nothing.
func Compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

// Matches reports whether re is set and matches name
func Matches(re *regexp.Regexp, name string) bool {
	return re != nil && re.MatchString(name)
}
