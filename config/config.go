// Package config loads, validates and writes back the application's yaml
// configuration.
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	devConfig "github.com/agendadev/agenda/dev/config"
	"github.com/agendadev/agenda/utils"
	"github.com/go-playground/validator"
	"github.com/spf13/viper"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config is the unmarshalled application configuration. Every path and
// port the other packages need comes from here; defaults fill in whatever
// the file leaves out.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Listener ListenerConfig `mapstructure:"listener"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Google   GoogleConfig   `mapstructure:"google"`
	Owner    OwnerConfig    `mapstructure:"owner"`
	Settings SettingsConfig `mapstructure:"settings"`

	// Events holds the calendar event ids created by the last touchbase
	// run, so the next run can clear them first.
	Events []string `mapstructure:"events"`

	v *viper.Viper
}

type DatabaseConfig struct {
	Name       string `mapstructure:"name" validate:"required"`
	Dir        string `mapstructure:"dir" validate:"required"`
	PassPhrase string `mapstructure:"passPhrase"`
}

type LoggingConfig struct {
	ErrorFile string `mapstructure:"errorFile" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type BackupConfig struct {
	Schedule string `mapstructure:"schedule" validate:"required"`
	Dir      string `mapstructure:"dir" validate:"required"`
	TimeZone string `mapstructure:"timeZone" validate:"required"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	Bucket           string `mapstructure:"bucket" validate:"required_with=EnableBackupSync"`
	Prefix           string `mapstructure:"prefix"`
	EnableBackupSync bool   `mapstructure:"enableBackupSync"`
}

type OwnerConfig struct {
	Email string `mapstructure:"email" validate:"omitempty,email"`
}

type SettingsConfig struct {
	TimeZone            string `mapstructure:"timezone" validate:"required"`
	TouchbaseRecurrence string `mapstructure:"touchbase-recurrence"`
}

// Load reads the config file plus matching environment variables, applies
// defaults and validates the result. With an empty cfgFile the default
// location is used and a starter file is written on the first run.
func Load(cfgFile string, devMode bool) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		configName, configDir, err := defaultCfgNameAndDir(devMode)
		if err != nil {
			return nil, err
		}

		// If config file is not found, create one the user can edit
		configFilePath := filepath.Join(configDir, configName)
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			err = ioutil.WriteFile(configFilePath, []byte(starterConfigValue(devMode)), 0600)
			if err != nil {
				return nil, err
			}
		}

		v.AddConfigPath(configDir)
		v.SetConfigType("yaml")
		v.SetConfigName(configName)
	}

	appDir, err := appDirectory(devMode)
	if err != nil {
		return nil, err
	}
	setDefaults(v, appDir)

	// BIND database.name to DATABASE_NAME and the google credentials to
	// GOOGLE_APPLICATION_CREDENTIALS, so neither value needs to live in
	// the yaml file. The env var overrides whatever is in the config file.
	v.BindEnv("database.name", "DATABASE_NAME")
	v.BindEnv("google.applicationCredentials", "GOOGLE_APPLICATION_CREDENTIALS")

	v.AutomaticEnv() // read in environment variables that match

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())

	config := &Config{v: v}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error parsing %v: %v", v.ConfigFileUsed(), err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config in %v: %v", v.ConfigFileUsed(), err)
	}

	// The gateway, file logger and backup job all expect their parent
	// directories to exist.
	for _, dir := range []string{config.Database.Dir, filepath.Dir(config.Logging.ErrorFile)} {
		if err := utils.CreateDirIfNotExist(dir); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// FileUsed returns the path of the config file Load read.
func (c *Config) FileUsed() string {
	return c.v.ConfigFileUsed()
}

// BackupSyncEnabled reports whether database backups should also be
// mirrored to google cloud storage.
func (c *Config) BackupSyncEnabled() bool {
	return c.Google.Storage.EnableBackupSync
}

// EventIDs returns the calendar event ids saved by the last touchbase run.
func (c *Config) EventIDs() []string {
	return c.Events
}

// SaveEventIDs writes the ids of the calendar events touchbase just
// created back to the config file.
func (c *Config) SaveEventIDs(ids []string) error {
	c.Events = ids
	c.v.Set("events", ids)

	return c.v.WriteConfig()
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func setDefaults(v *viper.Viper, appDir string) {
	v.SetDefault("database.name", "default.db")
	v.SetDefault("database.dir", filepath.Join(appDir, "db"))
	v.SetDefault("logging.errorFile", filepath.Join(appDir, "errors.log"))
	v.SetDefault("listener.port", 3000)
	v.SetDefault("backup.schedule", "0 0 * * *")
	v.SetDefault("backup.dir", filepath.Join(appDir, "backups"))
	v.SetDefault("backup.timeZone", "UTC")
	v.SetDefault("settings.timezone", "UTC")
	v.SetDefault("settings.touchbase-recurrence", "RRULE:FREQ=WEEKLY;")
}

func defaultCfgNameAndDir(devMode bool) (configName string, configDir string, err error) {
	configName = ".agenda.yaml"

	// Use home directory for production
	configDir, err = os.UserHomeDir()
	if err != nil {
		return "", "", err
	}

	if devMode {
		configName = ".agenda.dev.yaml"
		configDir, err = os.Getwd()
		if err != nil {
			return "", "", err
		}
	}

	return configName, configDir, err
}

// appDirectory is where agenda keeps its data (database, error log,
// backups): the 'agenda' folder in the home directory, or '<cwd>/dev' in
// dev mode.
func appDirectory(devMode bool) (string, error) {
	folderName := "agenda"
	rootDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if devMode {
		folderName = "dev"
		rootDir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	return filepath.Join(rootDir, folderName), nil
}

func starterConfigValue(devMode bool) string {
	if devMode {
		return devConfig.DEV_CONFIG_YML
	}

	return defaultConfigValue()
}

// defaultConfigValue returns the starter content for .agenda.yaml
func defaultConfigValue() string {
	return `# Where the contact database lives. The file is created on first use.
# Set database.passPhrase to encrypt it at rest.
# The DATABASE_NAME env var overrides database.name.
database:
  name: default.db

# Storage failures are appended to this file, one timestamped line each.
# logging:
#   errorFile:

# Port for 'agenda server'.
listener:
  port: 3000

# How often 'agenda server' copies the database into backup.dir,
# as a cron expression.
backup:
  schedule: "0 0 * * *"
  timeZone: "UTC"

# Fill these in to mirror backups to a google cloud storage bucket,
# and to let the touchbase command reach your google calendar.
# The GOOGLE_APPLICATION_CREDENTIALS env var overrides
# google.applicationCredentials.
google:
  applicationCredentials:
  storage:
    bucket:
    prefix:
    enableBackupSync: false

# The email associated with your google calendar.
owner:
  email:

settings:
  timezone: "UTC"
  touchbase-recurrence: "RRULE:FREQ=WEEKLY;"
`
}
