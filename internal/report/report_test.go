package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	portfoliodomain "github.com/smallbiznis/planshift/internal/portfolio/domain"
	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []scenariodomain.Row {
	domain := "acme.io"
	plan := "intro"
	return []scenariodomain.Row{
		{
			CustomerID:           "c-1",
			CustomerName:         "Acme",
			CustomerDomain:       &domain,
			Segment:              "AGENCY",
			BillingCustomerID:    "cus_1",
			CurrentMRR:           300,
			CurrentARR:           3600,
			Discounts:            "0 (0)",
			Interval:             "month",
			Workspaces:           2,
			RequiredCredits:      12000,
			LeastCostPlanName:    "intro",
			LeastCostARR:         3588,
			MatchARRPlanName:     &plan,
			MatchARR:             3600,
			MatchARRExtraCredits: 600,
		},
		{
			CustomerID:        "c-2",
			CustomerName:      "Globex",
			Segment:           "IN_HOUSE",
			LeastCostPlanName: "starter",
			LeastCostARR:      1068,
		},
	}
}

func TestWriteJSONArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRows()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "acme.io", decoded[0]["customer_domain"])
	assert.Equal(t, "intro", decoded[0]["match_arr_plan_name"])
	assert.Nil(t, decoded[1]["customer_domain"])
	assert.Nil(t, decoded[1]["match_arr_plan_name"])
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, CSVHeader(), records[0])

	col := func(name string) int {
		for i, h := range records[0] {
			if h == name {
				return i
			}
		}
		t.Fatalf("missing column %s", name)
		return -1
	}
	assert.Equal(t, "3600.00", records[1][col("current_arr")])
	assert.Equal(t, "intro", records[1][col("match_arr_plan_name")])
	assert.Equal(t, "600.00", records[1][col("match_arr_extra_credits_purchased")])
	assert.Equal(t, "", records[2][col("customer_domain")])
	assert.Equal(t, "", records[2][col("match_arr_plan_name")])
}

func TestCSVHeaderMatchesJSONFields(t *testing.T) {
	raw, err := json.Marshal(scenariodomain.Row{})
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	header := CSVHeader()
	assert.Len(t, header, len(fields))
	for _, name := range header {
		assert.Contains(t, fields, name)
	}
	assert.Len(t, CSVRecord(scenariodomain.Row{}), len(header))
}

func TestArtifactPath(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "", ArtifactPath("", "x", ".json"))
	assert.Equal(t, filepath.Join(dir, "q3-migration-run.json"), ArtifactPath(dir, "Q3 Migration Run", ".json"))
	assert.Equal(t, filepath.Join(dir, "planshift.csv"), ArtifactPath(dir+string(os.PathSeparator), "", ".csv"))
	assert.Equal(t, "out/result.json", ArtifactPath("out/result.json", "ignored", ".json"))
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	err := WriteFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("[]"))
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteFileLeavesNothingOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	err := WriteFile(path, func(io.Writer) error { return assert.AnError })
	require.ErrorIs(t, err, assert.AnError)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPortfolioPDF(t *testing.T) {
	summary := portfoliodomain.Summary{
		Customers:           1,
		PayingCustomers:     1,
		TotalCurrentCents:   decimal.NewFromInt(360000),
		TotalLeastCostCents: decimal.NewFromInt(358800),
		TotalDeltaCents:     decimal.NewFromInt(-1200),
		DeltaCents:          portfoliodomain.Stat{Count: 1, Mean: decimal.NewFromInt(-1200), Median: decimal.NewFromInt(-1200)},
		LeastCostPlans:      []portfoliodomain.PlanCount{{Plan: "intro", Customers: 1}},
		Segments: []portfoliodomain.SegmentSummary{
			{Segment: "AGENCY", Customers: 1, CurrentCents: decimal.NewFromInt(360000), LeastCostCents: decimal.NewFromInt(358800)},
		},
	}

	doc, err := PortfolioPDF(Meta{Label: "test", RunID: "01H", GeneratedAt: time.Unix(0, 0)}, summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}
