package types

// FileRecord describes one classified file
type FileRecord struct {
	// Name is the base filename without its trailing extension
	Name string `json:"name" yaml:"name" toml:"name"`

	// Extension is the lowercase extension without the dot. Empty when the
	// filename has no extension.
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty" toml:"extension,omitempty"`

	// SourcePath is the path of the origin file
	SourcePath string `json:"sourcePath" yaml:"sourcePath" toml:"sourcePath"`

	// DestPath is the path the file is intended to end up at
	DestPath string `json:"destPath" yaml:"destPath" toml:"destPath"`

	// Tag is the app icon suffix capture (e.g. "-60@2x")
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty" toml:"tag,omitempty"`

	// Scale and Device are the launch logo captures
	Scale  string `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty"`
	Device string `json:"device,omitempty" yaml:"device,omitempty" toml:"device,omitempty"`
}

// HasExtension reports whether the filename carried an extension
func (r FileRecord) HasExtension() bool {
	return r.Extension != ""
}

// FileName reassembles the filename from Name and Extension
func (r FileRecord) FileName() string {
	if r.Extension == "" {
		return r.Name
	}
	return r.Name + "." + r.Extension
}
