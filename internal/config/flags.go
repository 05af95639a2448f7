package config

import (
	"flag"
	"fmt"
)

// ApplyFlags copies values from section into every flag of fs that was not
// set on the command line. Keys are matched to flag names exactly; keys
// with no matching flag are ignored.
//
// Call after fs.Parse so explicit flags keep precedence over the file.
func (c *Config) ApplyFlags(fs *flag.FlagSet, section string) error {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var err error
	fs.VisitAll(func(f *flag.Flag) {
		if err != nil || explicit[f.Name] {
			return
		}
		v, ok := c.Lookup(section, f.Name)
		if !ok {
			return
		}
		if serr := fs.Set(f.Name, v); serr != nil {
			err = fmt.Errorf("config: [%s] %s = %q: %w", section, f.Name, v, serr)
		}
	})
	return err
}

// ApplyFile loads path and applies section to fs. An empty path is a no-op.
func ApplyFile(fs *flag.FlagSet, path, section string) error {
	if path == "" {
		return nil
	}
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	return cfg.ApplyFlags(fs, section)
}
