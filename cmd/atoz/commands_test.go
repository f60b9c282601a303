package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/atoz/pkg/api/types"
	"mercator-hq/atoz/pkg/cli"
)

func TestImportAndList(t *testing.T) {
	testConfig(t)
	importTestItems(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "title order",
			args: []string{"list", "--category", "book", "--format", "csv"},
			want: "ID,CATEGORY,TITLE,STATUS,MENU_ORDER\n" +
				"b3,book,42 Answers,published,0\n" +
				"b2,book,Apple,published,0\n" +
				"b1,book,banana,published,0\n",
		},
		{
			name: "letter filter",
			args: []string{"list", "--category", "book", "--letter", "B", "--format", "csv"},
			want: "ID,CATEGORY,TITLE,STATUS,MENU_ORDER\nb1,book,banana,published,0\n",
		},
		{
			name: "symbols",
			args: []string{"list", "--category", "book", "--letter", "0-9", "--format", "csv"},
			want: "ID,CATEGORY,TITLE,STATUS,MENU_ORDER\nb3,book,42 Answers,published,0\n",
		},
		{
			name: "admin sees drafts",
			args: []string{"list", "--category", "book", "--letter", "b", "--admin", "--format", "csv"},
			want: "ID,CATEGORY,TITLE,STATUS,MENU_ORDER\nb1,book,banana,published,0\nb4,book,Blueberry,draft,0\n",
		},
		{
			name: "unsupported category ignores letter",
			args: []string{"list", "--category", "film", "--letter", "z", "--format", "csv"},
			want: "ID,CATEGORY,TITLE,STATUS,MENU_ORDER\nf1,film,Alien,published,0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute(%v) error = %v", tt.args, err)
			}
			if diff := cmp.Diff(tt.want, out); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList_JSON(t *testing.T) {
	testConfig(t)
	importTestItems(t)

	out, err := execute(t, "list", "--category", "book", "--letter", "a", "--format", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	var resp types.ListResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if resp.Alpha.State != "filtered" || resp.Alpha.Filter != "a" {
		t.Errorf("alpha = %+v", resp.Alpha)
	}
	if resp.Backend != "sqlite" {
		t.Errorf("backend = %q, want sqlite", resp.Backend)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "b2" {
		t.Errorf("items = %+v", resp.Items)
	}
}

func TestList_InvalidQuery(t *testing.T) {
	testConfig(t)

	_, err := execute(t, "list", "--category", "book", "--limit", "-1")
	if err == nil {
		t.Fatal("list error = nil, want query error")
	}
	if cli.ExitCode(err) != cli.ExitFailure {
		t.Errorf("ExitCode() = %d", cli.ExitCode(err))
	}
}

func TestLinks(t *testing.T) {
	testConfig(t)

	out, err := execute(t, "links", "book", "--current", "Q", "--base", "/books?page=2", "--format", "csv")
	if err != nil {
		t.Fatalf("links error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 29 {
		t.Fatalf("got %d lines, want header plus 28 links", len(lines))
	}
	if lines[1] != "All,,,/books?page=2" {
		t.Errorf("All row = %q", lines[1])
	}
	if lines[2] != "#,0-9,,/books?alpha_filter=0-9&page=2" {
		t.Errorf("symbols row = %q", lines[2])
	}
	if lines[19] != "Q,q,*,/books?alpha_filter=q&page=2" {
		t.Errorf("Q row = %q", lines[19])
	}
	if n := strings.Count(out, ",*,"); n != 1 {
		t.Errorf("%d rows marked current, want 1", n)
	}
}

func TestLinks_Unsupported(t *testing.T) {
	testConfig(t)

	if _, err := execute(t, "links", "film"); err == nil {
		t.Error("links film error = nil")
	}
}

func TestCategories(t *testing.T) {
	testConfig(t)

	out, err := execute(t, "categories", "--format", "csv")
	if err != nil {
		t.Fatalf("categories error = %v", err)
	}
	want := "CATEGORY,ALPHA_SORTABLE,FEATURES\nbook,true,alpha_sort\nfilm,false,comments\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_Errors(t *testing.T) {
	testConfig(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"missing title", "items:\n  - category: book\n"},
		{"unknown field", "items:\n  - category: book\n    title: x\n    colour: red\n"},
		{"bad status", "items:\n  - category: book\n    title: x\n    status: archived\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "items.yaml", tt.content)
			if _, err := execute(t, "import", "--dry-run", path); err == nil {
				t.Error("import error = nil")
			}
		})
	}
}

func TestImport_DryRunJSON(t *testing.T) {
	testConfig(t)
	path := writeFile(t, t.TempDir(), "items.json",
		`{"items": [{"category": "book", "title": "Cherry"}, {"category": "book", "title": "Date"}]}`)

	out, err := execute(t, "import", "--dry-run", path)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	if !strings.Contains(out, "2 items valid") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "list", "--category", "book", "--format", "csv")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if out != "ID,CATEGORY,TITLE,STATUS,MENU_ORDER\n" {
		t.Errorf("dry run stored items: %q", out)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	caps := writeFile(t, dir, "capabilities.yaml", "categories:\n  book: [alpha_sort]\n  film: [comments]\n")
	cfgPath := writeFile(t, dir, "atoz.yaml", "store:\n  backend: memory\ncapabilities:\n  file_path: "+caps+"\n")

	out, err := execute(t, "validate", "--config", cfgPath)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, "2 categories, 1 alpha sortable") {
		t.Errorf("output = %q", out)
	}

	bad := writeFile(t, dir, "bad.yaml", "alpha:\n  param_name: \"alpha filter\"\n")
	_, err = execute(t, "validate", "--config", bad)
	if cli.ExitCode(err) != cli.ExitConfig {
		t.Errorf("ExitCode() = %d, want %d (err = %v)", cli.ExitCode(err), cli.ExitConfig, err)
	}

	badCaps := writeFile(t, dir, "badcaps.yaml", "categories:\n  \"\": [alpha_sort]\n")
	_, err = execute(t, "validate", "--config", cfgPath, badCaps)
	if cli.ExitCode(err) != cli.ExitConfig {
		t.Errorf("ExitCode() = %d, want %d (err = %v)", cli.ExitCode(err), cli.ExitConfig, err)
	}
}

func TestReadItems(t *testing.T) {
	items, err := readItems(strings.NewReader(testItems))
	if err != nil {
		t.Fatalf("readItems() error = %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("len(items) = %d, want 5", len(items))
	}
	if items[3].Status != "draft" || items[2].Title != "42 Answers" {
		t.Errorf("items decoded wrong: %+v %+v", items[2], items[3])
	}

	items, err = readItems(strings.NewReader(""))
	if err != nil || len(items) != 0 {
		t.Errorf("readItems(empty) = %v, %v", items, err)
	}
}
