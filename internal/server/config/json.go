package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Tejani8980/job-app-tracker-backend/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Token validity is given in minutes. After unmarshalling, set fields
// are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr         string `json:"endpoint_addr"`
	DatabaseDSN          string `json:"database_dsn"`
	JWTSecret            string `json:"jwt_secret"`
	TokenValidityMinutes int    `json:"token_validity_minutes"`
	AWSRegion            string `json:"aws_region"`
	S3Bucket             string `json:"s3_bucket"`
	S3AccessKeyID        string `json:"s3_access_key_id"`
	S3SecretAccessKey    string `json:"s3_secret_access_key"`
	S3BaseEndpoint       string `json:"s3_base_endpoint"`
}

// parseJson overlays configuration from the JSON file named by the -c or
// -config flag. Without the flag, nothing is loaded. An unreadable or
// malformed file panics: a config file that was asked for must be usable.
// Empty fields leave the current values untouched.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.JWTSecret != "" {
		config.JWTSecret = c.JWTSecret
	}
	if c.TokenValidityMinutes > 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityMinutes) * time.Minute
	}
	if c.AWSRegion != "" {
		config.AWSRegion = c.AWSRegion
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3AccessKeyID != "" {
		config.S3AccessKeyID = c.S3AccessKeyID
	}
	if c.S3SecretAccessKey != "" {
		config.S3SecretAccessKey = c.S3SecretAccessKey
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
