package pipeline_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"ucclean/internal/pipeline"
	"ucclean/internal/ranking"
	"ucclean/internal/records"
)

var header = []string{"Filing Number", "Official Designation", "Filing Date", "Company"}

func table(rows ...[]string) *records.Table {
	tbl := records.New(header)
	for i, row := range rows {
		tbl.Append(i+2, row)
	}
	return tbl
}

func ids(tbl *records.Table) []string {
	out := make([]string, 0, tbl.Len())
	for _, rec := range tbl.Records {
		out = append(out, rec.Field(0))
	}
	return out
}

func TestProcessEndToEndExample(t *testing.T) {
	in := table(
		[]string{"F1", "Owner", "09/05/2024", "Acme"},
		[]string{"F1", "Manager", "09/06/2024", "Acme"},
		[]string{"F2", "Vice President", "09/01/2024", "Beta"},
		[]string{"F2", "President", "09/02/2024", "Beta"},
		[]string{"F3", "Unknown Title", "08/30/2024", "Gamma"},
	)

	out, stats, err := pipeline.Process(in, pipeline.Options{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := [][]string{
		{"F1", "Owner", "09/05/2024", "Acme"},
		{"F2", "Vice President", "09/01/2024", "Beta"},
	}
	var got [][]string
	for _, rec := range out.Records {
		got = append(got, rec.Fields)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("output = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(out.Columns, header) {
		t.Fatalf("columns = %v, want %v", out.Columns, header)
	}

	wantStats := pipeline.Stats{
		RowsRead:          5,
		RowsAfterFilter:   4,
		DuplicatesDropped: 2,
		RowsWritten:       2,
		Columns:           header,
	}
	if !reflect.DeepEqual(stats, wantStats) {
		t.Fatalf("stats = %+v, want %+v", stats, wantStats)
	}
	if in.Len() != 5 {
		t.Fatalf("input table mutated: %d rows", in.Len())
	}
}

func TestProcessCutoffBoundary(t *testing.T) {
	in := table(
		[]string{"A", "Member", "08/31/2024", ""},
		[]string{"B", "Member", "09/01/2024", ""},
		[]string{"C", "Member", "not a date", ""},
		[]string{"D", "Member", "2024-09-02", ""},
		[]string{"E", "Member", " 9/3/2024 ", ""},
	)

	out, stats, err := pipeline.Process(in, pipeline.Options{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := ids(out); !reflect.DeepEqual(got, []string{"B", "E"}) {
		t.Fatalf("ids = %v, want [B E]", got)
	}
	if stats.UnparseableDates != 2 {
		t.Fatalf("unparseable = %d, want 2", stats.UnparseableDates)
	}
}

func TestProcessCustomCutoff(t *testing.T) {
	in := table(
		[]string{"A", "Member", "01/15/2024", ""},
		[]string{"B", "Member", "01/16/2024", ""},
	)
	opts := pipeline.Options{Cutoff: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)}

	out, _, err := pipeline.Process(in, opts)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := ids(out); !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("ids = %v, want [B]", got)
	}
}

func TestProcessMissingColumns(t *testing.T) {
	tbl := records.New([]string{"Filing Number", "Company"})
	tbl.Append(2, []string{"F1", "Acme"})

	out, _, err := pipeline.Process(tbl, pipeline.Options{})
	if err == nil {
		t.Fatal("expected schema error")
	}
	if out != nil {
		t.Fatalf("expected nil output, got %+v", out)
	}
	if !errors.Is(err, pipeline.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
	var schemaErr *pipeline.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	want := []string{"Official Designation", "Filing Date"}
	if !reflect.DeepEqual(schemaErr.Missing, want) {
		t.Fatalf("missing = %v, want %v", schemaErr.Missing, want)
	}
	if err.Error() != "missing required columns: Official Designation, Filing Date" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestProcessIsIdempotentOnFixedPoint(t *testing.T) {
	in := table(
		[]string{"F1", "Owner", "09/05/2024", "Acme"},
		[]string{"F2", "Secretary", "10/01/2024", "Beta"},
		[]string{"F3", "", "11/11/2024", "Gamma"},
	)

	first, _, err := pipeline.Process(in, pipeline.Options{})
	if err != nil {
		t.Fatalf("first Process: %v", err)
	}
	second, stats, err := pipeline.Process(first, pipeline.Options{})
	if err != nil {
		t.Fatalf("second Process: %v", err)
	}
	if !reflect.DeepEqual(first.Records, second.Records) {
		t.Fatalf("second pass changed output:\n%v\n%v", first.Records, second.Records)
	}
	if stats.DuplicatesDropped != 0 {
		t.Fatalf("expected no duplicates on fixed point, got %d", stats.DuplicatesDropped)
	}
}

func TestProcessUniqueIdentifiers(t *testing.T) {
	in := table(
		[]string{"B", "Member", "09/10/2024", "1"},
		[]string{"A", "Manager", "09/10/2024", "2"},
		[]string{"B", "CEO", "09/11/2024", "3"},
		[]string{"", "Member", "09/12/2024", "4"},
		[]string{"A", "Founder & Director", "09/12/2024", "5"},
		[]string{"", "Owner", "09/13/2024", "6"},
		[]string{"B", "Treasurer", "09/14/2024", "7"},
	)

	out, stats, err := pipeline.Process(in, pipeline.Options{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	var companies []string
	seen := map[string]bool{}
	for _, rec := range out.Records {
		id := rec.Field(0)
		if seen[id] {
			t.Fatalf("duplicate identifier %q in output", id)
		}
		seen[id] = true
		companies = append(companies, rec.Field(3))
	}
	// A: founder override; B: CEO; empty ids sort last and keep the owner.
	if want := []string{"5", "3", "6"}; !reflect.DeepEqual(companies, want) {
		t.Fatalf("kept rows = %v, want %v", companies, want)
	}
	if stats.DuplicatesDropped != 4 {
		t.Fatalf("dropped = %d, want 4", stats.DuplicatesDropped)
	}
}

func TestProcessNumericIdentifiers(t *testing.T) {
	in := table(
		[]string{"10", "Member", "09/10/2024", "a"},
		[]string{"9", "Member", "09/10/2024", "b"},
		[]string{"010", "President", "09/10/2024", "c"},
		[]string{"100", "Member", "09/10/2024", "d"},
	)

	out, _, err := pipeline.Process(in, pipeline.Options{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	var companies []string
	for _, rec := range out.Records {
		companies = append(companies, rec.Field(3))
	}
	if want := []string{"b", "c", "d"}; !reflect.DeepEqual(companies, want) {
		t.Fatalf("kept rows = %v, want %v", companies, want)
	}
}

func TestProcessKeepsDistinctLongIdentifiers(t *testing.T) {
	in := table(
		[]string{"20240912345678901", "Member", "09/05/2024", "a"},
		[]string{"20240912345678900", "Member", "09/05/2024", "b"},
		[]string{"20240912345678901", "Owner", "09/06/2024", "c"},
	)

	out, stats, err := pipeline.Process(in, pipeline.Options{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got, want := ids(out), []string{"20240912345678900", "20240912345678901"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	if out.Records[1].Field(3) != "c" {
		t.Fatalf("expected owner row for ...901, got %+v", out.Records[1])
	}
	if stats.DuplicatesDropped != 1 {
		t.Fatalf("dropped = %d, want 1", stats.DuplicatesDropped)
	}
}

func TestProcessDecimalIdentifiers(t *testing.T) {
	in := table(
		[]string{"2.5", "Member", "09/10/2024", "a"},
		[]string{"10", "Member", "09/10/2024", "b"},
		[]string{"2.50", "CEO", "09/10/2024", "c"},
	)

	out, _, err := pipeline.Process(in, pipeline.Options{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	var companies []string
	for _, rec := range out.Records {
		companies = append(companies, rec.Field(3))
	}
	if want := []string{"c", "b"}; !reflect.DeepEqual(companies, want) {
		t.Fatalf("kept rows = %v, want %v", companies, want)
	}
}

func TestProcessCustomRanker(t *testing.T) {
	in := table(
		[]string{"F1", "Clerk", "09/05/2024", "a"},
		[]string{"F1", "Director", "09/05/2024", "b"},
	)
	opts := pipeline.Options{Ranker: ranking.New([]string{"Director", "Clerk"}, nil)}

	out, _, err := pipeline.Process(in, opts)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Len() != 1 || out.Records[0].Field(3) != "b" {
		t.Fatalf("expected director row, got %+v", out.Records)
	}
}

func TestProcessNilTable(t *testing.T) {
	if _, _, err := pipeline.Process(nil, pipeline.Options{}); err == nil {
		t.Fatal("expected error for nil table")
	}
}

func TestInferKeyOrder(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want pipeline.KeyOrder
	}{
		{name: "integers", ids: []string{"1", "20", "003"}, want: pipeline.KeyInteger},
		{name: "long integers", ids: []string{"20240912345678901", "-7"}, want: pipeline.KeyInteger},
		{name: "decimals with blanks", ids: []string{"1.5", "", " 2 "}, want: pipeline.KeyNumeric},
		{name: "mixed", ids: []string{"1", "F2"}, want: pipeline.KeyLexical},
		{name: "nan text", ids: []string{"1", "NaN"}, want: pipeline.KeyLexical},
		{name: "beyond int64", ids: []string{"1", "99999999999999999999"}, want: pipeline.KeyLexical},
		{name: "all empty", ids: []string{"", ""}, want: pipeline.KeyLexical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var recs []records.Record
			for i, id := range tt.ids {
				recs = append(recs, records.Record{Line: i + 2, Fields: []string{id}})
			}
			if got := pipeline.InferKeyOrder(recs, 0); got != tt.want {
				t.Fatalf("InferKeyOrder(%v) = %s, want %s", tt.ids, got, tt.want)
			}
		})
	}
}
