package engine

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/stretchr/testify/require"
)

func exportSample() []model.Application {
	a := app("e1", "Acme", "Backend Engineer", model.StatusApplied, model.PriorityHigh, model.SourceLinkedIn, "2024-01-15")
	a.Notes = `Recruiter said "apply again in Q3"`
	a.JobURL = "https://acme.example/jobs/42"
	a.ResumeFilename = "acme.pdf"
	b := app("e2", "Beta, Inc", "SRE", model.StatusOffer, model.PriorityLow, model.SourceIndeed, "2024-06-01")
	b.JobURL = "https://beta.example/sre"
	return []model.Application{a, b}
}

func TestExportValidation(t *testing.T) {
	eng := Applications()
	records := exportSample()

	_, err := eng.Export(records, ExportRequest{Entity: "applications", Scope: ScopeAll, Format: FormatCSV}, testNow)
	require.ErrorIs(t, err, ErrNoColumns)

	_, err = eng.Export(nil, ExportRequest{Entity: "applications", Scope: ScopeSelected, Format: FormatCSV, Columns: AllColumns()}, testNow)
	require.ErrorIs(t, err, ErrEmptyScope)

	_, err = eng.Export(records, ExportRequest{Entity: "applications", Scope: ExportScope("page"), Format: FormatCSV, Columns: AllColumns()}, testNow)
	require.ErrorIs(t, err, ErrBadScope)

	_, err = eng.Export(records, ExportRequest{Entity: "applications", Scope: ScopeAll, Format: ExportFormat("xml"), Columns: AllColumns()}, testNow)
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestExportFilenameDeterministic(t *testing.T) {
	eng := Applications()
	doc, err := eng.Export(exportSample(), ExportRequest{
		Entity: "applications", Scope: ScopeFiltered, Format: FormatJSON, Columns: []Column{ColCompany},
	}, testNow)
	require.NoError(t, err)
	require.Equal(t, "applications-filtered-2024-06-02.json", doc.Filename)
	require.Equal(t, 2, doc.Records)
}

func TestExportCSVQuotingAndRoundTrip(t *testing.T) {
	eng := Applications()
	doc, err := eng.Export(exportSample(), ExportRequest{
		Entity: "applications", Scope: ScopeAll, Format: FormatCSV, Columns: AllColumns(),
	}, testNow)
	require.NoError(t, err)

	raw := string(doc.Content)
	// Every cell is quoted; embedded quotes are doubled.
	require.True(t, strings.HasPrefix(raw, `"Company","Role"`), "header: %q", raw)
	require.Contains(t, raw, `"Recruiter said ""apply again in Q3"""`)
	require.Contains(t, raw, `"Beta, Inc"`)

	reader := csv.NewReader(bytes.NewReader(doc.Content))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	labels := make([]string, 0)
	for _, col := range AllColumns() {
		labels = append(labels, col.Label())
	}
	if diff := cmp.Diff(labels, rows[0]); diff != "" {
		t.Fatalf("unexpected header (-want +got):\n%s", diff)
	}

	// Row order matches the scope order; values round-trip exactly.
	require.Equal(t, "Acme", rows[1][0])
	require.Equal(t, `Recruiter said "apply again in Q3"`, rows[1][7])
	require.Equal(t, "Beta, Inc", rows[2][0])
	require.Equal(t, "2024-06-01", rows[2][4])
}

func TestExportJSONRoundTrip(t *testing.T) {
	eng := Applications()
	records := exportSample()
	doc, err := eng.Export(records, ExportRequest{
		Entity: "applications", Scope: ScopeAll, Format: FormatJSON, Columns: []Column{ColCompany, ColStatus},
	}, testNow)
	require.NoError(t, err)

	var envelope struct {
		Meta struct {
			ExportedAt  string `json:"exported_at"`
			Scope       string `json:"scope"`
			RecordCount int    `json:"record_count"`
		} `json:"meta"`
		Data []map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(doc.Content, &envelope))
	require.Equal(t, "all", envelope.Meta.Scope)
	require.Equal(t, 2, envelope.Meta.RecordCount)
	require.Equal(t, "2024-06-02T12:00:00Z", envelope.Meta.ExportedAt)
	require.Len(t, envelope.Data, 2)

	// Only the selected columns appear.
	require.Equal(t, map[string]string{"Company": "Acme", "Status": "applied"}, envelope.Data[0])
	require.Equal(t, map[string]string{"Company": "Beta, Inc", "Status": "offer"}, envelope.Data[1])
}

func TestWriteDocument(t *testing.T) {
	eng := Applications()
	doc, err := eng.Export(exportSample(), ExportRequest{
		Entity: "applications", Scope: ScopeAll, Format: FormatCSV, Columns: []Column{ColCompany},
	}, testNow)
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := WriteDocument(dir, doc)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, "applications-all-2024-06-02.csv"))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, doc.Content, written)
}
