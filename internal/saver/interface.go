package saver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"TickerDump/internal/model"
)

// Saver serializes one price series. Payloads are built in memory so a
// failed encode never leaves a file behind.
type Saver interface {
	Encode(series *model.PriceSeries) ([]byte, error)
	Extension() string
}

// Formats lists the names accepted by New.
var Formats = []string{"json", "records", "csv", "parquet"}

// New creates the implementation for format (json, records, csv, parquet).
func New(format string) (Saver, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		return FrameSaver{}, nil
	case "records":
		return RecordsSaver{}, nil
	case "csv":
		return CSVSaver{}, nil
	case "parquet":
		return ParquetSaver{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use: %s)", format, strings.Join(Formats, ", "))
	}
}

// Path joins dir and symbol as "<dir>/<symbol>.<ext>", keeping dir as written
// so "./data/" yields "./data/AAPL.json".
func Path(dir, symbol, ext string) string {
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return dir + symbol + "." + ext
}

// WriteFile encodes series and writes it to path, replacing any existing file.
// The payload goes to a temp file in the same directory that is renamed over
// path, so a failed write leaves the previous file intact.
// It returns the number of bytes written.
func WriteFile(s Saver, series *model.PriceSeries, path string) (int, error) {
	data, err := s.Encode(series)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", series.Symbol, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, err
	}
	return len(data), nil
}
