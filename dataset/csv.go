package dataset

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

// Dataset is a labelled feature matrix read from a file.
type Dataset struct {
	// Y holds one label per row. It is nil when no label column is configured.
	Y *mat.VecDense
	// X holds the feature columns in file order.
	X *mat.Dense
	// IDs holds the id column, or row numbers when no id column is configured.
	IDs []int64
	// Features names the columns of X, taken from the header.
	Features []string
}

// CSVOption configures LoadCSV.
type CSVOption func(*csvConfig)

type csvConfig struct {
	comma       rune
	idColumn    int
	labelColumn int
	labels      map[string]float64
	logger      log.Logger
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(r rune) CSVOption {
	return func(c *csvConfig) { c.comma = r }
}

// WithIDColumn sets the index of the id column; -1 disables it.
func WithIDColumn(idx int) CSVOption {
	return func(c *csvConfig) { c.idColumn = idx }
}

// WithLabelColumn sets the index of the label column; -1 disables it.
func WithLabelColumn(idx int) CSVOption {
	return func(c *csvConfig) { c.labelColumn = idx }
}

// WithLabelMap maps label strings to numeric values. Labels missing from
// the map are parsed as numbers.
func WithLabelMap(labels map[string]float64) CSVOption {
	return func(c *csvConfig) { c.labels = labels }
}

// WithCSVLogger sets the logger used to report what was loaded.
func WithCSVLogger(logger log.Logger) CSVOption {
	return func(c *csvConfig) { c.logger = logger }
}

// DefaultLabels maps signal/background labels to ±1.
var DefaultLabels = map[string]float64{"s": 1, "b": -1}

// LoadCSV reads a headed CSV file whose column 0 is an id, column 1 a
// label and the remaining columns numeric features. The layout and label
// encoding can be changed with options.
func LoadCSV(r io.Reader, opts ...CSVOption) (*Dataset, error) {
	const op = "dataset.LoadCSV"
	cfg := &csvConfig{
		comma:       ',',
		idColumn:    0,
		labelColumn: 1,
		labels:      DefaultLabels,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("dataset")
	}
	if cfg.idColumn >= 0 && cfg.idColumn == cfg.labelColumn {
		return nil, errors.NewValidationError("label_column", "must differ from the id column", cfg.labelColumn)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.comma
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}
	// ReuseRecord overwrites the slice on the next Read.
	header = slices.Clone(header)

	var featureIdx []int
	var features []string
	for i, name := range header {
		if i == cfg.idColumn || i == cfg.labelColumn {
			continue
		}
		featureIdx = append(featureIdx, i)
		features = append(features, name)
	}
	if cfg.labelColumn >= len(header) || cfg.idColumn >= len(header) {
		return nil, errors.NewDimensionError(op, len(header), max(cfg.labelColumn, cfg.idColumn)+1, 1)
	}

	var (
		values []float64
		labels []float64
		ids    []int64
	)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read csv line %d", line)
		}

		if cfg.labelColumn >= 0 {
			label, err := parseLabel(record[cfg.labelColumn], cfg.labels)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: label", line)
			}
			labels = append(labels, label)
		}

		id := int64(line - 2)
		if cfg.idColumn >= 0 {
			id, err = strconv.ParseInt(record[cfg.idColumn], 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: id", line)
			}
		}
		ids = append(ids, id)

		for _, j := range featureIdx {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: column %q", line, header[j])
			}
			values = append(values, v)
		}
	}

	if len(ids) == 0 || len(featureIdx) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	ds := &Dataset{
		X:        mat.NewDense(len(ids), len(featureIdx), values),
		IDs:      ids,
		Features: features,
	}
	if cfg.labelColumn >= 0 {
		ds.Y = mat.NewVecDense(len(labels), labels)
	}

	cfg.logger.Info("dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.SamplesKey, len(ids),
		log.FeaturesKey, len(featureIdx),
	)
	return ds, nil
}

func parseLabel(raw string, mapping map[string]float64) (float64, error) {
	if v, ok := mapping[raw]; ok {
		return v, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.NewValueError("dataset.LoadCSV", "unknown label "+strconv.Quote(raw))
	}
	return v, nil
}
