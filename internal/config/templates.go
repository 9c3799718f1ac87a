package config

import (
	"fmt"
	"os"
)

// Template returns the starter config file contents.
func Template() string {
	return configTemplate
}

// WriteTemplate writes the starter config to path.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(configTemplate), 0o600)
}

const configTemplate = `app_url = "https://maierhjakob.github.io/PlayMakeFlag/"
store_path = "local/playbooks.json"

[field]
scale_px = 25.0
width_px = 625.0
height_px = 625.0

[handshake]
ping_interval_ms = 500
timeout_ms = 10000
`
