// Package config reads the process configuration file: one "key = value" pair per line, with
// "#" starting a comment line.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	configDir      = ".litetable-sql"
	configFileName = "litetable-sql.conf"
)

type Config struct {
	DataDir        string
	ServerAddress  string
	ServerPort     int
	EnableTLS      bool
	CertFile       string
	KeyFile        string
	MaxConnections int
	MaxBufferSize  int
	CDCAddress     string
	CDCPort        int
	// SnapshotTimer is the snapshot interval in seconds; 0 only snapshots on shutdown.
	SnapshotTimer    int
	MaxSnapshotLimit int
	Debug            bool
}

// Dir returns the configuration directory in the user's home directory.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, configDir), nil
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Default returns a configuration rooted at dir with every other value set.
func Default(dir string) *Config {
	return &Config{
		DataDir:          dir,
		ServerPort:       9443,
		CertFile:         filepath.Join(dir, "server.crt"),
		KeyFile:          filepath.Join(dir, "server.key"),
		MaxConnections:   100,
		MaxBufferSize:    4096,
		CDCAddress:       "127.0.0.1",
		CDCPort:          32496,
		SnapshotTimer:    300,
		MaxSnapshotLimit: 3,
	}
}

// Load reads the file at path over the defaults. A missing file at the default location is
// not an error; a missing file that was asked for explicitly is.
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, configFileName)
	}

	config := Default(dir)

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err = config.parse(file); err != nil {
		return nil, err
	}
	if err = config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		var err error
		switch key {
		case "data_dir":
			c.DataDir = value
		case "server_address":
			c.ServerAddress = value
		case "server_port":
			c.ServerPort, err = strconv.Atoi(value)
		case "enable_tls":
			c.EnableTLS, err = strconv.ParseBool(value)
		case "cert_file":
			c.CertFile = value
		case "key_file":
			c.KeyFile = value
		case "max_connections":
			c.MaxConnections, err = strconv.Atoi(value)
		case "max_buffer_size":
			c.MaxBufferSize, err = strconv.Atoi(value)
		case "cdc_address":
			c.CDCAddress = value
		case "cdc_port":
			c.CDCPort, err = strconv.Atoi(value)
		case "snapshot_timer":
			c.SnapshotTimer, err = strconv.Atoi(value)
		case "max_snapshot_limit":
			c.MaxSnapshotLimit, err = strconv.Atoi(value)
		case "debug":
			c.Debug, err = strconv.ParseBool(value)
		}
		if err != nil {
			return fmt.Errorf("line %d: invalid %s value %q: %w", lineNo, key, value, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	var errGrp []error
	if c.DataDir == "" {
		errGrp = append(errGrp, errors.New("data_dir cannot be empty"))
	}
	if c.ServerPort < 0 || c.ServerPort > 65535 {
		errGrp = append(errGrp, fmt.Errorf("invalid server_port: %d", c.ServerPort))
	}
	if c.CDCPort < 0 || c.CDCPort > 65535 {
		errGrp = append(errGrp, fmt.Errorf("invalid cdc_port: %d", c.CDCPort))
	}
	if c.SnapshotTimer < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid snapshot_timer: %d", c.SnapshotTimer))
	}
	if c.MaxSnapshotLimit < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid max_snapshot_limit: %d", c.MaxSnapshotLimit))
	}
	if c.EnableTLS && (c.CertFile == "" || c.KeyFile == "") {
		errGrp = append(errGrp, errors.New("cert_file and key_file are required when TLS is enabled"))
	}
	return errors.Join(errGrp...)
}
