// Copyright 2026 NetApp, Inc. All Rights Reserved.

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"

	"github.com/netapp/svm-cutover/utils/errors"
)

// ClusterConfig describes how to reach one storage cluster and which SVM on it takes part in the cutover.
type ClusterConfig struct {
	ManagementLIF        string          `json:"managementLIF"`
	SVM                  string          `json:"svm"`
	Username             string          `json:"username,omitempty"`
	Password             string          `json:"password,omitempty"`
	ClientCertificate    string          `json:"clientCertificate,omitempty"`
	ClientPrivateKey     string          `json:"clientPrivateKey,omitempty"`
	TrustedCACertificate string          `json:"trustedCACertificate,omitempty"`
	DebugTraceFlags      map[string]bool `json:"debugTraceFlags,omitempty"`
}

// String hides credentials so the config can be logged.
func (c ClusterConfig) String() string {
	return fmt.Sprintf("%s@%s/%s", c.Username, c.ManagementLIF, c.SVM)
}

// RunConfig is the on-disk description of one cutover run.
type RunConfig struct {
	Source           ClusterConfig `json:"source"`
	Target           ClusterConfig `json:"target"`
	SourceInterfaces []string      `json:"sourceInterfaces,omitempty"`
	TargetInterfaces []string      `json:"targetInterfaces,omitempty"`
	Relationships    []string      `json:"relationships,omitempty"`
	SnapshotDir      string        `json:"snapshotDir,omitempty"`
	PollInterval     string        `json:"pollInterval,omitempty"`
	SettleDelay      string        `json:"settleDelay,omitempty"`
	RetryBudget      int           `json:"retryBudget,omitempty"`
	RunTimeout       string        `json:"runTimeout,omitempty"`
	Simulate         bool          `json:"simulate,omitempty"`
	Force            bool          `json:"force,omitempty"`
}

// Timing holds the parsed durations of a RunConfig.
type Timing struct {
	PollInterval time.Duration
	SettleDelay  time.Duration
	RunTimeout   time.Duration
	RetryBudget  int
}

// Load reads a YAML or JSON run configuration, applies environment overrides and defaults, and validates it.
func Load(fs afero.Fs, path string) (*RunConfig, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.WrapWithPreconditionError(err, "could not read config file %s", path)
	}
	return Parse(raw)
}

// Parse decodes a YAML or JSON run configuration, applies environment overrides and defaults, and validates it.
func Parse(raw []byte) (*RunConfig, error) {
	cfg := &RunConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.WrapWithPreconditionError(err, "could not parse config")
	}

	cfg.applyEnvironment(os.Getenv)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *RunConfig) applyEnvironment(getenv func(string) string) {
	if password := getenv(ConfigEnvTitle + "_SOURCE_PASSWORD"); password != "" {
		c.Source.Password = password
	}
	if password := getenv(ConfigEnvTitle + "_TARGET_PASSWORD"); password != "" {
		c.Target.Password = password
	}
}

// ApplyDefaults fills unset timing fields.
func (c *RunConfig) ApplyDefaults() {
	if c.PollInterval == "" {
		c.PollInterval = DefaultPollInterval.String()
	}
	if c.SettleDelay == "" {
		c.SettleDelay = DefaultSettleDelay.String()
	}
	if c.RetryBudget == 0 {
		c.RetryBudget = DefaultRetryBudget
	}
}

// Validate checks everything that can be checked without talking to a cluster.
func (c *RunConfig) Validate() error {
	var problems []string

	clusters := []struct {
		name    string
		cluster ClusterConfig
	}{{"source", c.Source}, {"target", c.Target}}

	for _, entry := range clusters {
		name, cluster := entry.name, entry.cluster
		if cluster.ManagementLIF == "" {
			problems = append(problems, fmt.Sprintf("%s.managementLIF is required", name))
		}
		if cluster.SVM == "" {
			problems = append(problems, fmt.Sprintf("%s.svm is required", name))
		}
		if (cluster.ClientCertificate == "") != (cluster.ClientPrivateKey == "") {
			problems = append(problems, fmt.Sprintf("%s.clientCertificate and %s.clientPrivateKey go together",
				name, name))
		}
	}

	if len(c.SourceInterfaces) != len(c.TargetInterfaces) {
		problems = append(problems, fmt.Sprintf("sourceInterfaces (%d) and targetInterfaces (%d) must pair 1:1",
			len(c.SourceInterfaces), len(c.TargetInterfaces)))
	}

	if _, err := c.Timing(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.PreconditionError("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Timing parses the duration fields of the config.
func (c *RunConfig) Timing() (Timing, error) {
	var timing Timing
	var err error

	if timing.PollInterval, err = parsePositive("pollInterval", c.PollInterval); err != nil {
		return timing, err
	}
	if timing.SettleDelay, err = parsePositive("settleDelay", c.SettleDelay); err != nil {
		return timing, err
	}
	if c.RunTimeout != "" {
		if timing.RunTimeout, err = time.ParseDuration(c.RunTimeout); err != nil || timing.RunTimeout < 0 {
			return timing, fmt.Errorf("runTimeout %q is not a valid duration", c.RunTimeout)
		}
	}
	if c.RetryBudget < 1 {
		return timing, fmt.Errorf("retryBudget must be at least 1, got %d", c.RetryBudget)
	}
	timing.RetryBudget = c.RetryBudget

	return timing, nil
}

func parsePositive(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a valid duration", name, value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, value)
	}
	return d, nil
}
