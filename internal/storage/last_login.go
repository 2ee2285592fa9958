// Package storage persists small machine-local records under the CAV home
// directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LastLogin remembers the most recently established session so the login
// prompt can offer the previous address as its default.
type LastLogin struct {
	// Address is the wire form of the beneficiary address.
	Address string `json:"address"`
	// ServerURL is the base URL the address was valid against.
	ServerURL string `json:"serverUrl,omitempty"`
	// UpdatedAtMs is the wall-clock timestamp of the most recent write.
	UpdatedAtMs int64 `json:"updatedAtMs,omitempty"`
}

// LoadLastLogin reads the last-login record from cavHome.
//
// ok is false when no record exists.
func LoadLastLogin(cavHome string) (record LastLogin, ok bool, err error) {
	path, err := lastLoginPath(cavHome)
	if err != nil {
		return LastLogin{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LastLogin{}, false, nil
		}
		return LastLogin{}, false, err
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return LastLogin{}, false, err
	}
	return record, true, nil
}

// SaveLastLogin writes the record to disk atomically (write to a temp file,
// then rename).
func SaveLastLogin(cavHome string, record LastLogin) error {
	if strings.TrimSpace(record.Address) == "" {
		return fmt.Errorf("missing address")
	}
	path, err := lastLoginPath(cavHome)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	record.UpdatedAtMs = time.Now().UnixMilli()
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ClearLastLogin removes the record. Missing records are not an error.
func ClearLastLogin(cavHome string) error {
	path, err := lastLoginPath(cavHome)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func lastLoginPath(cavHome string) (string, error) {
	if strings.TrimSpace(cavHome) == "" {
		return "", fmt.Errorf("missing cav home")
	}
	return filepath.Join(cavHome, "last_login.json"), nil
}
