package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// LoadFile reads an Options value from a TOML file. Unset keys stay nil
// and keep prior values when merged. Unknown keys are rejected so typos
// fail loudly at setup instead of silently configuring nothing.
func LoadFile(path string) (Options, error) {
	var opts Options
	meta, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Options{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}
