package climate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestForecastIsPure(t *testing.T) {
	n := Default()
	d := time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)

	a := n.Forecast(d, "London", "UK")
	b := n.Forecast(d, "london", " uk ")
	require.Equal(t, a, b)

	// offset stays within ±6 of the January mean for London
	require.InDelta(t, 5.0, a.TemperatureC, 6.01)
	require.Contains(t, []string{"sunny", "partly-cloudy", "cloudy", "rainy", "snowy"}, a.Condition)
}

func TestForecastUnknownCityUsesFallback(t *testing.T) {
	n := Default()
	d := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	w := n.Forecast(d, "", "")
	require.InDelta(t, temperate[6], w.TemperatureC, 6.01)
}

func TestLoadFromFilesMissingIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	n, err := LoadFromFiles(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "nope.xlsx"))
	require.NoError(t, err)
	require.Equal(t, 0, n.Loaded())
}

func TestLoadCSVOverridesMonth(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "CityClimate.csv")
	csv := "City,Country,Month,Mean Temp C\nReykjavik,Iceland,1,-30\nReykjavik,Iceland,13,99\n"
	require.NoError(t, os.WriteFile(p, []byte(csv), 0o644))

	n, err := LoadFromFiles(p, "")
	require.NoError(t, err)
	require.Equal(t, 1, n.Loaded())

	w := n.Forecast(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), "Reykjavik", "Iceland")
	require.Less(t, w.TemperatureC, -23.0)

	// other months keep the fallback normals
	w = n.Forecast(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), "Reykjavik", "Iceland")
	require.InDelta(t, temperate[6], w.TemperatureC, 6.01)
}

func TestLoadCSVWithByteOrderMark(t *testing.T) {
	p := filepath.Join(t.TempDir(), "excel-export.csv")
	csv := "\uFEFFCity,Country,Month,MeanTempC\nOslo,Norway,2,-20\n"
	require.NoError(t, os.WriteFile(p, []byte(csv), 0o644))

	n, err := LoadFromFiles(p, "")
	require.NoError(t, err)
	require.Equal(t, 1, n.Loaded())
	w := n.Forecast(time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), "Oslo", "Norway")
	require.Less(t, w.TemperatureC, -13.0)
}

func TestLoadCSVRejectsMissingColumns(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(p, []byte("foo,bar\n1,2\n"), 0o644))

	n, err := LoadFromFiles(p, "")
	require.Error(t, err)
	require.NotNil(t, n)
}

func TestLoadXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ClimateNormals.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{
		"City", "Country", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{
		"Cairo", "Egypt", 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40,
	}))
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	n, err := LoadFromFiles("", p)
	require.NoError(t, err)
	require.Equal(t, 1, n.Loaded())

	w := n.Forecast(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), "Cairo", "Egypt")
	require.GreaterOrEqual(t, w.TemperatureC, 34.0)
}
