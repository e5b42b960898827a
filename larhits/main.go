package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	larhits "github.com/next-exp/larhits_go/pkg"
)

var configuration larhits.Configuration

var (
	logger             Logger
	VerbosityLevel     int
	DiscardErrors      bool
	DisplayEventNumber bool
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	os.Exit(run())
}

// run returns the process exit code. Errors matching ErrStopProcessing end
// the run gracefully.
func run() int {
	flags := registerFlags(flag.CommandLine)
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*flags.configFile)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return 1
	}
	flags.apply(&configuration)
	larhits.SetConfiguration(configuration)
	larhits.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	DiscardErrors = configuration.Discard
	DisplayEventNumber = configuration.DisplayEventNumber
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *flags.configFile)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	if err := validateConfiguration(configuration); err != nil {
		logger.Error(err.Error())
		flag.Usage()
		return 1
	}

	steering, err := larhits.ParseRecoOption(configuration.RecoOption)
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	steering.PrintOverallRecoStatus = configuration.PrintRecoStatus

	err = process(steering)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, larhits.ErrStopProcessing):
		logger.Info(fmt.Sprintf("Stopping: %v", err), "main")
		return 0
	default:
		logger.Error(err.Error())
		return 1
	}
}

func process(steering larhits.Steering) error {
	start := time.Now()

	geometry, err := loadGeometry(configuration)
	if err != nil {
		return err
	}
	if err := geometry.Validate(); err != nil {
		return err
	}

	source, err := larhits.NewRootEventSource(configuration.FileIn, configuration.TreeName)
	if err != nil {
		return fmt.Errorf("Error opening event file: %w", err)
	}
	defer source.Close()
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of events: %d", source.Entries())
		logger.Info(message, "main")
	}

	processor := &Processor{
		Geometry: geometry,
		Options: larhits.MergeOptions{
			Directional: configuration.LegacyDriftComparison,
		},
	}

	var writer *larhits.Writer
	if configuration.WriteData {
		writer, err = larhits.NewWriter(configuration.FileOut, configuration.CompressionLevel)
		if err != nil {
			return err
		}
		writer.WriteRunInfo(configuration.RunNumber, configuration.SettingsFile, geometry, steering)
		processor.Sink = writer
	}

	reader := NewEventReader(source, configuration.Skip, configuration.MaxEvents)
	runErr := processor.Run(reader, configuration.NumWorkers)

	// Hits processed before a stop are kept
	if writer != nil {
		if err := writer.Close(); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	processor.Summary.Log()
	if steering.PrintOverallRecoStatus {
		logger.Info(fmt.Sprintf("Reconstruction steering: %s", describeSteering(steering)), "main")
	}
	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Total time: %d ms", duration.Milliseconds()), "main")
	return runErr
}

func loadGeometry(config larhits.Configuration) (larhits.Geometry, error) {
	if config.GeometryFile != "" {
		return larhits.LoadGeometryXML(config.GeometryFile)
	}

	dbConn, err := larhits.ConnectToDatabase(config.DBDriver, config.User, config.Passwd, config.Host, config.DBName)
	if err != nil {
		return larhits.Geometry{}, fmt.Errorf("Error connection to database: %w", err)
	}
	defer dbConn.Close()
	return larhits.LoadGeometryFromDB(dbConn, config.RunNumber)
}

func describeSteering(s larhits.Steering) string {
	flags := []struct {
		name  string
		value bool
	}{
		{"AllHitsCosmicReco", s.RunAllHitsCosmicReco},
		{"Stitching", s.RunStitching},
		{"CosmicHitRemoval", s.RunCosmicHitRemoval},
		{"Slicing", s.RunSlicing},
		{"NeutrinoReco", s.RunNeutrinoRecoOption},
		{"CosmicReco", s.RunCosmicRecoOption},
		{"SliceID", s.PerformSliceID},
	}
	strs := make([]string, 0, len(flags))
	for _, f := range flags {
		strs = append(strs, fmt.Sprintf("%s=%t", f.name, f.value))
	}
	return strings.Join(strs, " ")
}
