package config

import (
	"fmt"
	"os"
)

// Template returns a starter TOML config for a query endpoint.
func Template() string {
	return clientTemplate
}

// WriteTemplate writes the starter config to path. Existing files are kept
// unless overwrite is set; the template carries credentials, so it is
// written owner-only.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(clientTemplate), 0o600)
}

const clientTemplate = `host = "localhost"
port = 10011
timeout = "5s"

# ServerQuery admin credentials; leave empty to connect without logging in.
login_name = "serveradmin"
login_password = ""

# Virtual server to select after connecting; 0 selects nothing.
server_id = 1
`
