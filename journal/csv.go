package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes condition and sizing history to two flat CSV files.
type CSVJournal struct {
	conditions *csv.Writer
	sizings    *csv.Writer
	cf, sf     *os.File
}

// NewCSV creates (truncating) both files and writes header rows.
func NewCSV(conditionsPath, sizingsPath string) (*CSVJournal, error) {
	cf, err := os.Create(conditionsPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(sizingsPath)
	if err != nil {
		cf.Close()
		return nil, err
	}

	cw := csv.NewWriter(cf)
	sw := csv.NewWriter(sf)

	if err := cw.Write([]string{"id", "time", "symbol", "condition", "trend", "volatility"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"id", "time", "symbol", "entry_price", "stop_loss", "risk_percent", "lots", "policy"}); err != nil {
		return nil, err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{conditions: cw, sizings: sw, cf: cf, sf: sf}, nil
}

func (j *CSVJournal) RecordCondition(r ConditionRecord) error {
	err := j.conditions.Write([]string{
		r.ID,
		r.Time.Format(time.RFC3339),
		r.Symbol,
		r.Condition,
		r.Trend,
		r.Volatility,
	})
	if err != nil {
		return err
	}

	j.conditions.Flush()
	return j.conditions.Error()
}

func (j *CSVJournal) RecordSizing(r SizingRecord) error {
	err := j.sizings.Write([]string{
		r.ID,
		r.Time.Format(time.RFC3339),
		r.Symbol,
		f(r.EntryPrice),
		f(r.StopLoss),
		f(r.RiskPercent),
		f(r.Lots),
		r.Policy,
	})
	if err != nil {
		return err
	}

	j.sizings.Flush()
	return j.sizings.Error()
}

func (j *CSVJournal) Close() error {
	j.conditions.Flush()
	j.sizings.Flush()
	if err := j.cf.Close(); err != nil {
		j.sf.Close()
		return err
	}
	return j.sf.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
