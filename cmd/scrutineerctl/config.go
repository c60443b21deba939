// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/campusgov/scrutineer/util"
	"github.com/decred/dcrd/dcrutil/v3"
	flags "github.com/jessevdk/go-flags"
)

const (
	// General application settings
	appName     = "scrutineerctl"
	dataDirname = "data"
	logDirname  = "logs"
	logLevel    = "info"

	voteKeyFilename = "votekey.json"
)

var (
	// General application settings
	configFilename = fmt.Sprintf("%v.conf", appName)
	logFilename    = fmt.Sprintf("%v.log", appName)

	appDir      = dcrutil.AppDataDir(appName, false)
	dataDir     = filepath.Join(appDir, dataDirname)
	logDir      = filepath.Join(appDir, logDirname)
	configFile  = filepath.Join(appDir, configFilename)
	voteKeyFile = filepath.Join(appDir, voteKeyFilename)
)

// config is the command configuration.
type config struct {
	AppDir      string `long:"appdir" description:"Application home directory path"`
	DataDir     string `long:"datadir" description:"Data directory path"`
	LogDir      string `long:"logdir" description:"Log directory path"`
	ConfigFile  string `long:"configfile" description:"Config file path"`
	LogLevel    string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	VoteKeyFile string `long:"votekeyfile" description:"Vote key file path"`
	VoteKeyPass string `long:"votekeypass" description:"Passphrase that the vote key file is encrypted under"`
}

// loadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in the app functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options. Command line options always take
// precedence.
func loadConfig() (*config, error) {
	// Setup the default config
	cfg := &config{
		AppDir:      appDir,
		DataDir:     dataDir,
		LogDir:      logDir,
		ConfigFile:  configFile,
		LogLevel:    logLevel,
		VoteKeyFile: voteKeyFile,
	}

	// Pre-parse the command line options to see if an alternative config
	// file was specified. Printing the help message and catching unknown
	// flag errors is the responsibility of the caller.
	var (
		preCfg    = cfg
		preParser = flags.NewParser(preCfg, flags.IgnoreUnknown)
	)
	_, err := preParser.Parse()
	if err != nil {
		return nil, err
	}

	// Update the home directory if specified. Since the home directory
	// is updated, other variables need to be updated to reflect the new
	// changes.
	if preCfg.AppDir != "" {
		cfg.AppDir = util.CleanAndExpandPath(preCfg.AppDir)

		// Update the other path config settings with the
		// newly provided application home directory.
		if preCfg.DataDir == dataDir {
			cfg.DataDir = filepath.Join(cfg.AppDir, dataDirname)
		} else {
			cfg.DataDir = preCfg.DataDir
		}
		if preCfg.LogDir == logDir {
			cfg.LogDir = filepath.Join(cfg.AppDir, logDirname)
		} else {
			cfg.LogDir = preCfg.LogDir
		}
		if preCfg.ConfigFile == configFile {
			cfg.ConfigFile = filepath.Join(cfg.AppDir, configFilename)
		} else {
			cfg.ConfigFile = preCfg.ConfigFile
		}
		if preCfg.VoteKeyFile == voteKeyFile {
			cfg.VoteKeyFile = filepath.Join(cfg.AppDir, voteKeyFilename)
		} else {
			cfg.VoteKeyFile = preCfg.VoteKeyFile
		}
	}

	// Load any additional settings from the config file. Printing the
	// help message and catching unknown flag errors is the
	// responsibility of the caller.
	parser := flags.NewParser(cfg, flags.IgnoreUnknown|flags.PassDoubleDash)
	err = flags.NewIniParser(parser).ParseFile(cfg.ConfigFile)
	if err != nil {
		var e *os.PathError
		if !errors.As(err, &e) {
			return nil, fmt.Errorf("parse config file: %v", err)
		}
		// No config file was found. This is ok. A config file
		// is not required. Continue.
	}

	// Parse command line options again to ensure they take precedence.
	_, err = parser.Parse()
	if err != nil {
		return nil, err
	}

	// Check for the show log level. This is used to list supported
	// subsystems and exit.
	if cfg.LogLevel == "show" {
		fmt.Println("Supported subsystems", SupportedSubsystems())
		os.Exit(0)
	}

	// Clean and expand all file paths
	cfg.AppDir = util.CleanAndExpandPath(cfg.AppDir)
	cfg.DataDir = util.CleanAndExpandPath(cfg.DataDir)
	cfg.LogDir = util.CleanAndExpandPath(cfg.LogDir)
	cfg.ConfigFile = util.CleanAndExpandPath(cfg.ConfigFile)
	cfg.VoteKeyFile = util.CleanAndExpandPath(cfg.VoteKeyFile)

	// Create the app and data directories if they don't exist
	err = os.MkdirAll(cfg.AppDir, 0700)
	if err != nil {
		return nil, fmt.Errorf("create app dir: %v", err)
	}
	err = os.MkdirAll(cfg.DataDir, 0700)
	if err != nil {
		return nil, fmt.Errorf("create data dir: %v", err)
	}

	return cfg, nil
}

// parseAndSetLogLevels attempts to parse the specified debug level and set
// the levels accordingly. An appropriate error is returned if anything is
// invalid.
func parseAndSetLogLevels(logLevel string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(logLevel, ",") && !strings.Contains(logLevel, "=") {
		// Validate log level
		if !validLogLevel(logLevel) {
			return fmt.Errorf("the specified log level [%v] is invalid",
				logLevel)
		}

		// Change the logging level for all subsystems
		SetLogLevels(logLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while
	// detecting issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(logLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return fmt.Errorf("the specified log level contains an " +
				"invalid subsystem/level pair")
		}

		// Extract the specified subsystem and log level
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate log level
		if !validLogLevel(logLevel) {
			return fmt.Errorf("the specified log level [%v] is invalid",
				logLevel)
		}

		SetLogLevel(subsysID, logLevel)
	}

	return nil
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}
