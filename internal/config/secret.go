package config

import (
	"fmt"
	"os"
	"strings"
)

// ReadSecretFile reads a WAPI password from a file (Docker secrets
// pattern). The file contents are trimmed of leading/trailing whitespace.
func ReadSecretFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading secret file: %w", err)
	}
	secret := strings.TrimSpace(string(content))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", path)
	}
	return secret, nil
}
