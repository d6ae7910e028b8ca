package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/scatter/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	pointsFile *os.File
	statsFile  *os.File

	// Track if headers have been written
	pointsHeaderWritten bool
	statsHeaderWritten  bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	pointsPath := filepath.Join(dir, "points.csv")
	f, err := os.Create(pointsPath)
	if err != nil {
		return nil, fmt.Errorf("creating points.csv: %w", err)
	}
	om.pointsFile = f

	statsPath := filepath.Join(dir, "stats.csv")
	f, err = os.Create(statsPath)
	if err != nil {
		om.pointsFile.Close()
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WritePoints appends a point set to points.csv.
func (om *OutputManager) WritePoints(points [][]float64) error {
	if om == nil {
		return nil
	}

	records := ToRecords(points)

	if !om.pointsHeaderWritten {
		if err := gocsv.Marshal(records, om.pointsFile); err != nil {
			return fmt.Errorf("writing points: %w", err)
		}
		om.pointsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.pointsFile); err != nil {
			return fmt.Errorf("writing points: %w", err)
		}
	}

	return nil
}

// WriteStats appends a spacing stats record to stats.csv.
func (om *OutputManager) WriteStats(stats SpacingStats) error {
	if om == nil {
		return nil
	}

	records := []SpacingStats{stats}

	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, f := range []*os.File{om.pointsFile, om.statsFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
