package csvsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/mtcli/pkg/types"
)

var ErrSourceClosed = errors.New("csv source is closed")

func init() {
	_ = types.Session(&Source{})
}

// Source is a kline session over the bar files of a directory.
//
// The metatrader source looks up the terminal exports named like
// WINQ25_M5_202507010900_202507041800.csv (H1 for the 60 minutes bars),
// the csv source looks up the binance dumps named like BTCUSDT-5m-2025-07.csv.
// When there is no file of the requested period, the 1 minute files are resampled.
type Source struct {
	name types.ExchangeName
	path string

	mu     sync.Mutex
	closed bool

	logger logrus.FieldLogger
}

func NewSource(name types.ExchangeName, path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: invalid data path", name)
	}

	if !info.IsDir() {
		return nil, errors.Errorf("%s: data path %s is not a directory", name, path)
	}

	return &Source{
		name:   name,
		path:   path,
		logger: logrus.WithField("exchange", name.String()),
	}, nil
}

func (s *Source) Name() types.ExchangeName {
	return s.name
}

func (s *Source) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *Source) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// filePatterns returns the glob patterns of the files holding the klines of the period
func (s *Source) filePatterns(symbol string, period types.Period) []string {
	var tags []string
	switch s.name {
	case types.ExchangeCSV:
		tags = []string{"-" + period.Interval().String()}
	default:
		tag := fmt.Sprintf("_M%d", period.Minutes())
		if period.Minutes()%60 == 0 {
			tag = fmt.Sprintf("_H%d", period.Minutes()/60)
		}
		tags = []string{tag}
	}

	var patterns []string
	for _, tag := range tags {
		patterns = append(patterns,
			filepath.Join(s.path, symbol+tag+".csv"),
			filepath.Join(s.path, symbol+tag+"-*.csv"),
			filepath.Join(s.path, symbol+tag+"_*.csv"),
		)
	}
	return patterns
}

func (s *Source) findFiles(symbol string, period types.Period) ([]string, error) {
	var files []string
	var seen = map[string]struct{}{}
	for _, pattern := range s.filePatterns(symbol, period) {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid file pattern %s", pattern)
		}

		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (s *Source) load(symbol string, period types.Period) ([]types.KLine, error) {
	files, err := s.findFiles(symbol, period)
	if err != nil {
		return nil, err
	}

	base := period
	if len(files) == 0 && period != types.Period1m {
		base = types.Period1m
		if files, err = s.findFiles(symbol, base); err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		s.logger.Warnf("no %s kline files of %s found in %s", period, symbol, s.path)
		return nil, nil
	}

	var klines []types.KLine
	for _, file := range files {
		s.logger.Debugf("reading %s klines from %s", base, file)

		fileKLines, err := sniffFile(file, base)
		if err != nil {
			return nil, err
		}
		klines = append(klines, fileKLines...)
	}

	klines = types.SortKLines(klines)
	if base != period {
		klines = types.ResampleKLines(klines, period)
	}

	for i := range klines {
		klines[i].Exchange = s.name
		klines[i].Symbol = symbol
	}

	return klines, nil
}

func (s *Source) QueryKLines(ctx context.Context, symbol string, period types.Period, options types.KLineQueryOptions) ([]types.KLine, error) {
	if s.isClosed() {
		return nil, ErrSourceClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	klines, err := s.load(symbol, period)
	if err != nil {
		return nil, err
	}

	if options.EndTime != nil {
		end := *options.EndTime
		n := sort.Search(len(klines), func(i int) bool {
			return klines[i].StartTime.After(end)
		})
		klines = klines[:n]
	}

	if options.Limit > 0 {
		klines = types.KLineWindow(klines).Tail(options.Limit)
	}

	return klines, nil
}
