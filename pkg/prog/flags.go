package prog

import "flag"

// FlagSet wraps a [flag.FlagSet]. It also provides methods to register flags
// shared by multiple subprograms, so that each flag is only registered once.
type FlagSet struct {
	*flag.FlagSet
	json   *bool
	config *string
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"Show the output from -buildinfo, -check or -version in JSON")
		fs.json = &json
	}
	return fs.json
}

// Config returns a pointer to the value of the -config flag.
func (fs *FlagSet) Config() *string {
	if fs.config == nil {
		var config string
		fs.StringVar(&config, "config", "",
			"Path to a YAML file configuring interpreter limits; defaults to $NOVIQ_CONFIG")
		fs.config = &config
	}
	return fs.config
}
