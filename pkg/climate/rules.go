package climate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type Weather struct {
	TemperatureC float64 `json:"temperature"`
	Condition    string  `json:"condition"` // sunny|partly-cloudy|cloudy|rainy|snowy
}

// Forecaster produces a synthetic reading for a calendar date and location.
// Implementations must be pure: the same inputs always give the same reading.
type Forecaster interface {
	Forecast(date time.Time, city, country string) Weather
}

// Normals holds monthly mean temperatures (°C) per location.
type Normals struct {
	monthly  map[string][12]float64 // "city|country" and "city" keys
	fallback [12]float64
	loaded   int // rows read from files
}

var temperate = [12]float64{3, 4, 8, 12, 16, 20, 23, 22, 18, 13, 8, 4}

var builtin = map[string][12]float64{
	"london|uk":           {5, 5, 7, 10, 13, 16, 19, 18, 16, 12, 8, 6},
	"paris|france":        {5, 6, 9, 12, 16, 19, 21, 21, 17, 13, 8, 5},
	"new york|usa":        {0, 2, 6, 12, 17, 23, 26, 25, 21, 15, 9, 3},
	"sydney|australia":    {23, 23, 22, 19, 16, 14, 13, 14, 16, 18, 20, 22},
	"dubai|uae":           {19, 20, 23, 27, 31, 33, 35, 35, 33, 29, 25, 21},
	"stockholm|sweden":    {-2, -2, 1, 5, 11, 16, 18, 17, 12, 7, 3, -1},
	"singapore|singapore": {27, 27, 28, 28, 28, 28, 28, 28, 28, 28, 27, 27},
}

// Default returns normals backed only by the built-in table.
func Default() *Normals {
	n := &Normals{monthly: map[string][12]float64{}, fallback: temperate}
	for k, v := range builtin {
		n.put(k, v)
	}
	return n
}

// LoadFromFiles layers CSV rows (City,Country,Month,MeanTempC) and an XLSX
// sheet (City,Country,Jan..Dec) over the built-in table. Missing files are
// skipped; unreadable ones are reported but the defaults stay usable.
func LoadFromFiles(cityCSV, normalsXLSX string) (*Normals, error) {
	n := Default()
	var errs []error
	if cityCSV != "" {
		if err := n.loadCSV(cityCSV); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("climate csv: %w", err))
		}
	}
	if normalsXLSX != "" {
		if err := n.loadXLSX(normalsXLSX); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("climate xlsx: %w", err))
		}
	}
	return n, errors.Join(errs...)
}

// Loaded reports how many rows came from files.
func (n *Normals) Loaded() int { return n.loaded }

func (n *Normals) put(key string, months [12]float64) {
	n.monthly[key] = months
	if city, _, ok := strings.Cut(key, "|"); ok {
		if _, exists := n.monthly[city]; !exists {
			n.monthly[city] = months
		}
	}
}

func locKey(city, country string) string {
	return strings.ToLower(strings.TrimSpace(city)) + "|" + strings.ToLower(strings.TrimSpace(country))
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func headerIndex(head []string) func(keys ...string) int {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHeader(h)] = i
	}
	return func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHeader(k)]; ok {
				return idx
			}
		}
		return -1
	}
}

func (n *Normals) loadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}
	findAny := headerIndex(head)
	cCity := findAny("City", "location")
	cCountry := findAny("Country", "country_code")
	cMonth := findAny("Month", "mon")
	cTemp := findAny("MeanTempC", "mean_temp", "temperature", "temp_c")
	if cCity == -1 || cMonth == -1 || cTemp == -1 {
		return fmt.Errorf("missing required columns, found %v; need City, Month, MeanTempC", head)
	}

	rows := map[string][12]float64{}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		month, err := strconv.Atoi(get(cMonth))
		if err != nil || month < 1 || month > 12 {
			continue
		}
		temp, err := strconv.ParseFloat(get(cTemp), 64)
		if err != nil {
			continue
		}
		key := locKey(get(cCity), get(cCountry))
		months, ok := rows[key]
		if !ok {
			months = n.lookup(get(cCity), get(cCountry))
		}
		months[month-1] = temp
		rows[key] = months
		n.loaded++
	}
	for k, v := range rows {
		n.put(k, v)
	}
	return nil
}

var monthCols = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

func (n *Normals) loadXLSX(path string) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	sheet := "Normals"
	if idx, _ := x.GetSheetIndex(sheet); idx < 0 {
		sheet = x.GetSheetName(0)
	}
	rows, err := x.GetRows(sheet)
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return nil
	}
	findAny := headerIndex(rows[0])
	cCity := findAny("City", "location")
	cCountry := findAny("Country")
	if cCity == -1 {
		return fmt.Errorf("sheet %q has no City column", sheet)
	}
	cols := make([]int, 12)
	for i, m := range monthCols {
		cols[i] = findAny(m, strconv.Itoa(i+1))
	}

	for _, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		city := get(cCity)
		if city == "" {
			continue
		}
		months := n.lookup(city, get(cCountry))
		for i, c := range cols {
			if v, err := strconv.ParseFloat(get(c), 64); err == nil {
				months[i] = v
			}
		}
		n.put(locKey(city, get(cCountry)), months)
		n.loaded++
	}
	return nil
}

func (n *Normals) lookup(city, country string) [12]float64 {
	if m, ok := n.monthly[locKey(city, country)]; ok {
		return m
	}
	if m, ok := n.monthly[strings.ToLower(strings.TrimSpace(city))]; ok && city != "" {
		return m
	}
	return n.fallback
}

// Forecast derives temperature and condition from the monthly mean plus a
// hash of (date, city, country), so repeated calls agree.
func (n *Normals) Forecast(date time.Time, city, country string) Weather {
	mean := n.lookup(city, country)[int(date.Month())-1]

	h := fnv.New64a()
	_, _ = h.Write([]byte(date.Format("2006-01-02") + "|" + locKey(city, country)))
	sum := h.Sum64()

	offset := float64(sum%1201)/100 - 6 // [-6, +6]
	temp := math.Round((mean+offset)*10) / 10

	roll := (sum >> 16) % 100
	var cond string
	switch {
	case temp <= 1 && roll < 40:
		cond = "snowy"
	case roll < 25:
		cond = "rainy"
	case roll < 50:
		cond = "cloudy"
	case roll < 70:
		cond = "partly-cloudy"
	default:
		cond = "sunny"
	}
	return Weather{TemperatureC: temp, Condition: cond}
}

var _ Forecaster = (*Normals)(nil)
