// Package dataset turns raw open-data transaction records into a cleaned,
// immutable in-memory table. Rows that fail date or numeric coercion are
// dropped silently; only a missing column aborts the load.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"agriwatch/internal/minguo"
)

// ErrSchema indicates a required column is absent from the input shape.
var ErrSchema = errors.New("dataset: 資料缺少必要欄位")

// Value carries a raw JSON scalar as text. The platform serialises prices and
// quantities inconsistently (sometimes numbers, sometimes strings), so the
// decoder keeps the literal and coercion happens in Clean.
type Value string

// UnmarshalJSON accepts a JSON string, number, or null.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	*v = Value(string(b))
	return nil
}

// RawRecord mirrors one row of the FarmTransData payload.
type RawRecord struct {
	TransDate  Value `json:"交易日期"`
	CropCode   Value `json:"作物代號"`
	CropName   Value `json:"作物名稱"`
	MarketCode Value `json:"市場代號"`
	MarketName Value `json:"市場名稱"`
	UpperPrice Value `json:"上價"`
	MidPrice   Value `json:"中價"`
	LowerPrice Value `json:"下價"`
	AvgPrice   Value `json:"平均價"`
	Quantity   Value `json:"交易量"`
}

// Record is one cleaned transaction row. Every field is guaranteed valid:
// Date is non-zero, AvgPrice and Volume are numeric, names are non-empty.
type Record struct {
	CropName   string
	MarketName string
	TradeDate  string // original Minguo text form
	Date       time.Time
	AvgPrice   float64
	Volume     float64
	Weekday    time.Weekday
	Month      int // 1..12
}

// Table is the cleaned dataset for one load. It is built once and read-only
// thereafter; a reload replaces it wholesale.
type Table struct {
	records []Record
	crops   []string
	dropped int
}

type requiredColumn struct {
	name string
	get  func(RawRecord) Value
}

var requiredColumns = []requiredColumn{
	{"交易日期", func(r RawRecord) Value { return r.TransDate }},
	{"作物名稱", func(r RawRecord) Value { return r.CropName }},
	{"市場名稱", func(r RawRecord) Value { return r.MarketName }},
	{"平均價", func(r RawRecord) Value { return r.AvgPrice }},
	{"交易量", func(r RawRecord) Value { return r.Quantity }},
}

// Clean sanitises raw records into a Table. It fails with ErrSchema when a
// required column is missing from the input shape entirely; individual bad
// rows are excluded, never surfaced.
func Clean(records []RawRecord) (*Table, error) {
	if err := checkSchema(records); err != nil {
		return nil, err
	}

	t := &Table{records: make([]Record, 0, len(records))}
	seen := make(map[string]struct{})

	for _, raw := range records {
		rec, ok := cleanRow(raw)
		if !ok {
			t.dropped++
			continue
		}
		t.records = append(t.records, rec)
		if _, dup := seen[rec.CropName]; !dup {
			seen[rec.CropName] = struct{}{}
			t.crops = append(t.crops, rec.CropName)
		}
	}
	return t, nil
}

// checkSchema runs the structural check once: a required column that is empty
// on every row is considered absent from the payload shape.
func checkSchema(records []RawRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, col := range requiredColumns {
		present := false
		for _, r := range records {
			if strings.TrimSpace(string(col.get(r))) != "" {
				present = true
				break
			}
		}
		if !present {
			return fmt.Errorf("%w: %s", ErrSchema, col.name)
		}
	}
	return nil
}

func cleanRow(raw RawRecord) (Record, bool) {
	crop := strings.TrimSpace(string(raw.CropName))
	market := strings.TrimSpace(string(raw.MarketName))
	tradeDate := strings.TrimSpace(string(raw.TransDate))
	if crop == "" || market == "" || tradeDate == "" {
		return Record{}, false
	}

	date, err := minguo.ToGregorian(tradeDate)
	if err != nil {
		return Record{}, false
	}

	price, ok := coerceFloat(raw.AvgPrice)
	if !ok {
		return Record{}, false
	}
	volume, ok := coerceFloat(raw.Quantity)
	if !ok {
		return Record{}, false
	}

	return Record{
		CropName:   crop,
		MarketName: market,
		TradeDate:  tradeDate,
		Date:       date,
		AvgPrice:   price,
		Volume:     volume,
		Weekday:    date.Weekday(),
		Month:      int(date.Month()),
	}, true
}

func coerceFloat(v Value) (float64, bool) {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Records returns the cleaned rows in input order. Callers must treat the
// slice as read-only.
func (t *Table) Records() []Record { return t.records }

// Len reports the number of cleaned rows.
func (t *Table) Len() int { return len(t.records) }

// Dropped reports how many raw rows were excluded during cleaning.
func (t *Table) Dropped() int { return t.dropped }

// Crops lists distinct crop names in order of first appearance.
func (t *Table) Crops() []string { return t.crops }
