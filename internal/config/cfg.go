package config

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// UserName is the name of the ohplaylistd system user.
const UserName = "ohplaylistd"

// ValueKey represents value keys for contexts.
type ValueKey string

const (
	// KeyCfg is the context key for the ohplaylistd configuration.
	KeyCfg ValueKey = "cfg"
	// KeyVersion is the context key for the ohplaylistd version.
	KeyVersion ValueKey = "version"
)

const (
	// CfgDir is the directory where the ohplaylistd configuration is
	// stored.
	CfgDir = "/etc/ohplaylistd"
	// IconDir is the directory where the device icons are stored.
	IconDir = CfgDir + "/icons"
	// cfgFilepath is the default location of the configuration file.
	cfgFilepath = CfgDir + "/config.json"

	// defaultCacheCapacity is used when cache_capacity is zero or
	// absent in the configuration file (spec.md §4.5).
	defaultCacheCapacity = 1000
	// defaultMaxPlaylists is used when max_playlists is zero or absent
	// (SPEC_FULL.md Supplemented Features #1).
	defaultMaxPlaylists = 500
)

// Cfg stores the data from the ohplaylistd configuration file.
type Cfg struct {
	PlaylistDir   string `json:"playlist_dir"`
	LogDir        string `json:"log_dir"`
	LogLevel      string `json:"log_level"`
	CacheCapacity int    `json:"cache_capacity"`
	MaxPlaylists  int    `json:"max_playlists"`
	UPnP          upnp   `json:"upnp"`
}

type upnp struct {
	Interfaces []string `json:"interfaces"`
	Port       int      `json:"port"`
	ServerName string   `json:"server_name"`
	UUID       string   `json:"udn"`
	MaxAge     int      `json:"max_age"`
	StatusFile string   `json:"status_file"`
	Device     device   `json:"device"`
}

type device struct {
	Manufacturer     string `json:"manufacturer"`
	ManufacturerURL  string `json:"manufacturer_url"`
	ModelDescription string `json:"model_desc"`
	ModelName        string `json:"model_name"`
	ModelURL         string `json:"model_url"`
	ModelNumber      string `json:"model_no"`
	SerialNumber     string `json:"serial_no"`
	UPC              string `json:"upc"`
}

// Load reads the configuration file and returns it as a Cfg, filling in
// default values for cache/catalog tunables that were left at zero, and
// bootstrapping a fresh UDN if none is configured - the ambient device
// identity concern spec.md §1 names as an external collaborator.
func Load() (cfg Cfg, err error) {
	cfgFile, err := os.ReadFile(cfgFilepath)
	if err != nil {
		return Cfg{}, errors.Wrapf(err, "config file '%s' couldn't be read", cfgFilepath)
	}

	if err = json.Unmarshal(cfgFile, &cfg); err != nil {
		return Cfg{}, errors.Wrapf(err, "config file '%s' couldn't be unmarshalled", cfgFilepath)
	}

	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = defaultCacheCapacity
	}
	if cfg.MaxPlaylists <= 0 {
		cfg.MaxPlaylists = defaultMaxPlaylists
	}
	if cfg.UPnP.UUID == "" {
		cfg.UPnP.UUID = uuid.NewString()
	}

	return cfg, nil
}

// Validate checks if the configuration is complete and correct. If it's
// not, an error is returned.
func (me *Cfg) Validate() (err error) {
	if err = validateDir(me.PlaylistDir, "playlist_dir"); err != nil {
		return
	}
	if err = validateDir(me.LogDir, "log_dir"); err != nil {
		return
	}
	if err = validateUser(); err != nil {
		return
	}
	if err = me.UPnP.validate(); err != nil {
		return
	}
	return
}

// validate checks if the UPnP part of the configuration is complete and
// correct.
func (me *upnp) validate() (err error) {
	if me.Port <= 0 {
		return fmt.Errorf("port must be > 0")
	}
	if len(me.ServerName) == 0 {
		return fmt.Errorf("the server must have a name, but server_name is empty")
	}
	if len(me.UUID) > 0 {
		if _, err = uuid.Parse(me.UUID); err != nil {
			return errors.Wrapf(err, "the server's UDN '%s' is not a valid UUID", me.UUID)
		}
	}
	if len(me.StatusFile) == 0 {
		return fmt.Errorf("status_file must not be empty")
	}
	if me.MaxAge <= 0 {
		return fmt.Errorf("max_age must be > 0")
	}
	return nil
}

// Test reads the configuration file and checks it for completeness and
// consistency, printing the resolved configuration. Used by the
// `ohplaylistd test` CLI command.
func Test() (err error) {
	cfg, err := Load()
	if err != nil {
		err = errors.Wrapf(err, "the ohplaylistd configuration file '%s' couldn't be read", cfgFilepath)
		return
	}

	if err = cfg.Validate(); err != nil {
		return
	}

	fmt.Printf("Congrats: The ohplaylistd configuration is complete and consistent :)\n")
	fmt.Printf("  playlist_dir:   %s\n", cfg.PlaylistDir)
	fmt.Printf("  cache_capacity: %d\n", cfg.CacheCapacity)
	fmt.Printf("  max_playlists:  %d\n", cfg.MaxPlaylists)
	fmt.Printf("  udn:            %s\n", cfg.UPnP.UUID)
	return
}

// validateDir checks if dir exists. name is the name used for that
// directory in error messages.
func validateDir(dir, name string) error {
	if dir == "" {
		return fmt.Errorf("no %s maintained", name)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s '%s' doesn't exist", name, dir)
		}
		return errors.Wrapf(err, "cannot check if %s '%s' exists", name, dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s '%s' is not a directory", name, dir)
	}
	return nil
}

func validateUser() error {
	if _, err := user.Lookup(UserName); err != nil {
		return errors.Wrap(err, "ohplaylistd system user does not exist")
	}
	return nil
}
