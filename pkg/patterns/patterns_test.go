package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_MatchAppIcon(t *testing.T) {
	tests := []struct {
		name      string
		iconName  string
		filename  string
		wantTag   string
		wantMatch bool
	}{
		{"size and scale suffix", "icon.png", "icon-60@2x.png", "-60@2x", true},
		{"bare icon", "icon.png", "icon.png", "", true},
		{"default icon name", "", "appicon-Small.png", "-Small", true},
		{"not a png", "icon.png", "icon-60@2x.jpg", "", false},
		{"different base", "icon.png", "logo-60.png", "", false},
		{"prefix must anchor", "icon.png", "myicon.png", "", false},
		{"regex chars are literal", "app+icon.png", "app+icon@3x.png", "@3x", true},
		{"regex chars do not widen", "app+icon.png", "appicon@3x.png", "", false},
		{"name without png suffix", "Icon", "Icon-72.png", "-72", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet(tt.iconName)
			tag, ok := s.MatchAppIcon(tt.filename)
			assert.Equal(t, tt.wantMatch, ok)
			assert.Equal(t, tt.wantTag, tag)
		})
	}
}

func TestSet_MatchLaunchImage(t *testing.T) {
	s := NewSet("")

	matches := []string{
		"Default.png",
		"Default@2x.png",
		"Default-568h@2x.png",
		"Default-Landscape.png",
		"Default-Portrait-1024h@3x.png",
		"Default@9x.png",
	}
	for _, name := range matches {
		assert.True(t, s.MatchLaunchImage(name), name)
	}

	misses := []string{
		"Default.jpg",
		"Default@1x.png",
		"Default-Sideways.png",
		"default.png",
		"MyDefault.png",
		"Default-568@2x.png",
	}
	for _, name := range misses {
		assert.False(t, s.MatchLaunchImage(name), name)
	}
}

func TestSet_MatchLaunchLogo(t *testing.T) {
	s := NewSet("")

	tests := []struct {
		filename  string
		want      LogoMatch
		wantMatch bool
	}{
		{"LaunchLogo.png", LogoMatch{}, true},
		{"LaunchLogo@2x~ipad.png", LogoMatch{Scale: "2", Device: "ipad"}, true},
		{"LaunchLogo@3x.jpg", LogoMatch{Scale: "3"}, true},
		{"LaunchLogo~iphone.png", LogoMatch{Device: "iphone"}, true},
		{"LaunchLogo@4x.png", LogoMatch{}, false},
		{"LaunchLogo~android.png", LogoMatch{}, false},
		{"LaunchLogo.gif", LogoMatch{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, ok := s.MatchLaunchLogo(tt.filename)
			assert.Equal(t, tt.wantMatch, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSet_InBundle(t *testing.T) {
	s := NewSet("")

	assert.True(t, s.InBundle("Settings.bundle/icon.jpg"))
	assert.True(t, s.InBundle("vendor/Maps.bundle/images/pin.png"))
	assert.False(t, s.InBundle("images/pin.png"))
	assert.False(t, s.InBundle("Settings.bundle"))
	assert.False(t, s.InBundle("my.bundler/pin.png"))
}

func TestDefaultIgnorePatterns(t *testing.T) {
	dirs, err := Compile(DefaultIgnoreDirs)
	require.NoError(t, err)
	files, err := Compile(DefaultIgnoreFiles)
	require.NoError(t, err)

	for _, name := range []string{".git", ".svn", "CVS", ".cvs", "$RECYCLE.BIN"} {
		assert.True(t, Matches(dirs, name), name)
	}
	assert.False(t, Matches(dirs, "images"))

	for _, name := range []string{".DS_Store", "._foo.png", "Thumbs.db", ".gitignore"} {
		assert.True(t, Matches(files, name), name)
	}
	assert.False(t, Matches(files, "app.js"))
}

func TestCompile(t *testing.T) {
	re, err := Compile("")
	require.NoError(t, err)
	assert.Nil(t, re)
	assert.False(t, Matches(re, "anything"))

	_, err = Compile("([")
	assert.Error(t, err)
}
