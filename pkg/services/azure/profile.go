package azure

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/de-tools/diag-audit/pkg/models/domain"
)

const DefaultProfile = "default"

// DefaultProfilePath returns ~/.azure/config.
func DefaultProfilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".azure", "config"), nil
}

// LoadProfile reads tenant_id and client_id from the named section of the ini
// file at path. An empty path falls back to ~/.azure/config, which may be
// absent or lack the section; an explicit path and profile must exist.
func LoadProfile(path, profile string) (domain.AzureProfile, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	empty := domain.AzureProfile{Name: profile}

	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultProfilePath()
		if err != nil {
			return empty, nil
		}
		if _, err := os.Stat(defaultPath); errors.Is(err, fs.ErrNotExist) {
			return empty, nil
		}
		path = defaultPath
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return domain.AzureProfile{}, fmt.Errorf("unable to load Azure profile file %s: %w", path, err)
	}

	section, err := cfg.GetSection(profile)
	if err != nil {
		if !explicit {
			return empty, nil
		}
		return domain.AzureProfile{}, fmt.Errorf("profile %s not found in %s: %w", profile, path, err)
	}

	return domain.AzureProfile{
		Name:     profile,
		TenantID: section.Key("tenant_id").MustString(section.Key("tenant").String()),
		ClientID: section.Key("client_id").String(),
	}, nil
}
