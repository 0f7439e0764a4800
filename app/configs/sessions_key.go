package configs

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/gorilla/securecookie"
)

const newKeysFile = ".env.new_keys"

// GenerateJWTSecret returns a random 64 byte secret, base64 encoded.
func GenerateJWTSecret() (string, error) {
	key := securecookie.GenerateRandomKey(64)
	if key == nil {
		return "", fmt.Errorf("could not generate JWT secret")
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

// GenerateAndPrintKeys writes a fresh JWT_SECRET to out and to .env.new_keys.
func GenerateAndPrintKeys(out io.Writer) error {
	secret, err := GenerateJWTSecret()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "================================================")
	fmt.Fprintf(out, "JWT_SECRET=%s\n", secret)
	fmt.Fprintln(out, "================================================")

	if err := os.WriteFile(newKeysFile, []byte("JWT_SECRET="+secret+"\n"), 0o600); err != nil {
		return fmt.Errorf("write keys to %s: %w", newKeysFile, err)
	}
	fmt.Fprintf(out, "Keys have been written to '%s'. Regenerating invalidates every issued token.\n", newKeysFile)
	return nil
}
