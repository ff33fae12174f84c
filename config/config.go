// Package config loads remote object store settings.
//
// Settings come from defaults, an optional YAML file and FILEHANDLER_S3_*
// environment variables, in increasing order of precedence:
//
//	FILEHANDLER_S3_PROVIDER       minio (default) or aws
//	FILEHANDLER_S3_ENDPOINT       host[:port] for minio, URL for aws
//	FILEHANDLER_S3_REGION         signing region
//	FILEHANDLER_S3_ACCESS_KEY     static credentials; empty uses the default chain
//	FILEHANDLER_S3_SECRET_KEY
//	FILEHANDLER_S3_SESSION_TOKEN
//	FILEHANDLER_S3_USE_SSL        true (default) or false
//	FILEHANDLER_S3_PATH_STYLE     path-style bucket addressing (aws provider)
//	FILEHANDLER_S3_PART_SIZE      multipart threshold/part size in bytes
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmgilman/go/filehandler/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FILEHANDLER_S3"

// Provider names the client library used for the remote store.
type Provider string

const (
	// ProviderMinIO uses minio-go.
	ProviderMinIO Provider = "minio"
	// ProviderAWS uses aws-sdk-go-v2.
	ProviderAWS Provider = "aws"
)

// Config is the remote object store configuration.
type Config struct {
	Provider     Provider `mapstructure:"provider" validate:"required,oneof=minio aws" yaml:"provider"`
	Endpoint     string   `mapstructure:"endpoint" validate:"required_if=Provider minio" yaml:"endpoint"`
	Region       string   `mapstructure:"region" yaml:"region"`
	AccessKey    string   `mapstructure:"access_key" yaml:"access_key"`
	SecretKey    string   `mapstructure:"secret_key" validate:"required_with=AccessKey" yaml:"secret_key"`
	SessionToken string   `mapstructure:"session_token" yaml:"session_token"`
	UseSSL       bool     `mapstructure:"use_ssl" yaml:"use_ssl"`
	PathStyle    bool     `mapstructure:"path_style" yaml:"path_style"`
	PartSize     int64    `mapstructure:"part_size" validate:"omitempty,gte=5242880" yaml:"part_size"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Provider: ProviderMinIO,
		Endpoint: "s3.amazonaws.com",
		Region:   "us-east-1",
		UseSSL:   true,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
// Failures are CodeInvalidConfig errors.
func Load(path string) (Config, error) {
	v := viper.New()
	setupViper(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !stderrors.Is(err, os.ErrNotExist) {
				return Config{}, errors.WrapWithContext(err, errors.CodeInvalidConfig,
					"failed to read config file", map[string]interface{}{"path": path})
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.CodeInvalidConfig, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setupViper registers defaults for every key so AutomaticEnv can bind
// them during Unmarshal.
func setupViper(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("provider", string(d.Provider))
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("region", d.Region)
	v.SetDefault("access_key", "")
	v.SetDefault("secret_key", "")
	v.SetDefault("session_token", "")
	v.SetDefault("use_ssl", d.UseSSL)
	v.SetDefault("path_style", false)
	v.SetDefault("part_size", 0)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints. Each violated field is listed in the
// error context under "fields".
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(err, errors.CodeInvalidConfig, "invalid configuration")
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s:%s", fe.Field(), fe.Tag()))
	}
	return errors.WrapWithContext(err, errors.CodeInvalidConfig,
		fmt.Sprintf("invalid configuration: %s", strings.Join(fields, ", ")),
		map[string]interface{}{"fields": fields})
}
