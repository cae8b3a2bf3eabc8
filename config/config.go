// Package config resolves the sleep-manager capability flags once at
// startup, from the environment with an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables understood by Load.
const (
	EnvDebugBuild    = "SLEEPMGR_DEBUG_BUILD"
	EnvDeviceSleep   = "SLEEPMGR_DEVICE_SLEEP"
	EnvMonitor       = "SLEEPMGR_MONITOR"
	EnvMonitorPort   = "SLEEPMGR_MONITOR_PORT"
	EnvRecordingPath = "SLEEPMGR_RECORDING_PATH"
)

// Config carries the startup configuration of the sleep manager. The two
// capability flags, DebugBuild and DeviceSleep, are resolved once here so
// that the arbiter's decision logic stays a pure function of explicit
// inputs.
type Config struct {
	// DebugBuild marks a debug/instrumented configuration, in which deep
	// sleep is forbidden to preserve debugger connectivity.
	DebugBuild bool

	// DeviceSleep tells whether the platform has hardware sleep support at
	// all. When false, entering an idle power state is a no-op.
	DeviceSleep bool

	// MonitorOn enables the monitoring web server.
	MonitorOn bool

	// MonitorPort is the port of the monitoring server; 0 picks a random
	// port.
	MonitorPort int

	// RecordingPath is the SQLite file path (without suffix) for activity
	// recording; empty picks a generated name.
	RecordingPath string
}

// Default returns the configuration used when nothing is set: release
// build, sleep support present, monitoring on with a random port.
func Default() Config {
	return Config{
		DebugBuild:  false,
		DeviceSleep: true,
		MonitorOn:   true,
	}
}

// Load builds the configuration from the process environment. A .env file
// in the working directory is loaded first if present; real environment
// variables take precedence over it.
func Load() (Config, error) {
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load()

	c := Default()

	var err error

	c.DebugBuild, err = boolFromEnv(EnvDebugBuild, c.DebugBuild)
	if err != nil {
		return Config{}, err
	}

	c.DeviceSleep, err = boolFromEnv(EnvDeviceSleep, c.DeviceSleep)
	if err != nil {
		return Config{}, err
	}

	c.MonitorOn, err = boolFromEnv(EnvMonitor, c.MonitorOn)
	if err != nil {
		return Config{}, err
	}

	if v := os.Getenv(EnvMonitorPort); v != "" {
		c.MonitorPort, err = strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMonitorPort, err)
		}
	}

	c.RecordingPath = os.Getenv(EnvRecordingPath)

	return c, nil
}

func boolFromEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}

	return b, nil
}
