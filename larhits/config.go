package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	larhits "github.com/next-exp/larhits_go/pkg"
)

func LoadConfiguration(filename string) (larhits.Configuration, error) {
	config := defaultConfiguration()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return config, err
		}
		err = json.Unmarshal(data, &config)
		if err != nil {
			return config, err
		}
	}

	// Database credentials may come from the environment
	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("parse env: %w", err)
	}
	return config, nil
}

func defaultConfiguration() larhits.Configuration {
	var config larhits.Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Skip = 0
	config.Verbosity = 0
	config.TreeName = larhits.DefaultTreeName
	config.RecoOption = "Full"
	config.RunNumber = 0
	config.NoDB = true
	config.DBDriver = larhits.DriverMySQL
	config.Host = "localhost"
	config.User = "larreader"
	config.Passwd = "readonly"
	config.DBName = "LArConditions"
	config.NumWorkers = 1
	config.Discard = true
	config.WriteData = true
	config.CompressionLevel = 4
	config.LegacyDriftComparison = false
	config.DisplayEventNumber = false
	config.PrintRecoStatus = false
	return config
}

// commandLine holds the flags that override the configuration file.
type commandLine struct {
	configFile   *string
	recoOption   *string
	settingsFile *string
	eventFile    *string
	geometryFile *string
	nEvents      *int
	nSkip        *int
	printStatus  *bool
	displayEvent *bool
	fs           *flag.FlagSet
}

func registerFlags(fs *flag.FlagSet) *commandLine {
	return &commandLine{
		configFile:   fs.String("config", "", "Configuration file path"),
		recoOption:   fs.String("r", "", "Reconstruction option"),
		settingsFile: fs.String("i", "", "Reconstruction settings file"),
		eventFile:    fs.String("e", "", "Input event file"),
		geometryFile: fs.String("g", "", "Geometry xml file"),
		nEvents:      fs.Int("n", -1, "Number of events to process"),
		nSkip:        fs.Int("s", 0, "Number of events to skip"),
		printStatus:  fs.Bool("p", false, "Print overall reconstruction status"),
		displayEvent: fs.Bool("N", false, "Print event numbers"),
		fs:           fs,
	}
}

// apply overrides the configuration with the flags given explicitly.
func (c *commandLine) apply(config *larhits.Configuration) {
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "r":
			config.RecoOption = *c.recoOption
		case "i":
			config.SettingsFile = *c.settingsFile
		case "e":
			config.FileIn = *c.eventFile
		case "g":
			config.GeometryFile = *c.geometryFile
		case "n":
			config.MaxEvents = *c.nEvents
		case "s":
			config.Skip = *c.nSkip
		case "p":
			config.PrintRecoStatus = *c.printStatus
		case "N":
			config.DisplayEventNumber = *c.displayEvent
		}
	})
}

func validateConfiguration(config larhits.Configuration) error {
	if config.FileIn == "" {
		return fmt.Errorf("no input event file given")
	}
	if config.GeometryFile == "" && config.NoDB {
		return fmt.Errorf("no geometry file given and database access disabled")
	}
	if config.Skip < 0 {
		return fmt.Errorf("invalid number of events to skip: %d", config.Skip)
	}
	return nil
}

func printConfiguration(config larhits.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("Tree name: %s", config.TreeName), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Geometry file: %s", config.GeometryFile), "config")
	logger.Info(fmt.Sprintf("Reco option: %s", config.RecoOption), "config")
	logger.Info(fmt.Sprintf("Settings file: %s", config.SettingsFile), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("DB driver: %s", config.DBDriver), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Discard: %t", config.Discard), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Legacy drift comparison: %t", config.LegacyDriftComparison), "config")
}
