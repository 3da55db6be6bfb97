package microtable_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/microtable"
)

// --- Test types ---

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type audited struct {
	Created string `yaml:"created"`
}

type account struct {
	ID     int    `json:"id"`
	Secret string `json:"-"`
	audited
	note string
}

type stubRenderer struct {
	grid       string
	properties []string
}

func (s *stubRenderer) Render(_ any, properties []string) (string, error) {
	s.properties = properties
	return s.grid, nil
}

func grid(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// ============================================================
// Table
// ============================================================

func TestTable(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		data any
		want string
	}{
		"single string": {
			data: "test",
			want: "test\n",
		},
		"nil": {
			data: nil,
			want: "null\n",
		},
		"single record": {
			data: microtable.Record{{Key: "name", Value: "Mura"}, {Key: "age", Value: 20}},
			want: grid(
				"┌─────────┬────────┐",
				"│ (index) │ Values │",
				"├─────────┼────────┤",
				"│ name    │ Mura │",
				"│ age     │ 20     │",
				"└─────────┴────────┘",
			),
		},
		"array of primitives": {
			data: []int{1, 2, 3, 4},
			want: grid(
				"┌─────────┬────────┐",
				"│ (index) │ Values │",
				"├─────────┼────────┤",
				"│ 0       │ 1      │",
				"│ 1       │ 2      │",
				"│ 2       │ 3      │",
				"│ 3       │ 4      │",
				"└─────────┴────────┘",
			),
		},
		"array of arrays": {
			data: [][]int{{1, 2, 3, 4}, {1, 2, 3, 4}},
			want: grid(
				"┌─────────┬───┬───┬───┬───┐",
				"│ (index) │ 0 │ 1 │ 2 │ 3 │",
				"├─────────┼───┼───┼───┼───┤",
				"│ 0       │ 1 │ 2 │ 3 │ 4 │",
				"│ 1       │ 1 │ 2 │ 3 │ 4 │",
				"└─────────┴───┴───┴───┴───┘",
			),
		},
		"array of structs": {
			data: []person{{Name: "Satu", Age: 30}, {Name: "Mura", Age: 25}},
			want: grid(
				"┌─────────┬────────┬─────┐",
				"│ (index) │ name   │ age │",
				"├─────────┼────────┼─────┤",
				"│ 0       │ Satu │ 30  │",
				"│ 1       │ Mura │ 25  │",
				"└─────────┴────────┴─────┘",
			),
		},
		"map keys are sorted": {
			data: map[string]int{"b": 2, "a": 1},
			want: grid(
				"┌─────────┬────────┐",
				"│ (index) │ Values │",
				"├─────────┼────────┤",
				"│ a       │ 1      │",
				"│ b       │ 2      │",
				"└─────────┴────────┘",
			),
		},
		"empty list": {
			data: []string{},
			want: grid(
				"┌─────────┐",
				"│ (index) │",
				"├─────────┤",
				"└─────────┘",
			),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := microtable.Table(tt.data, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableYAMLNodeKeepsKeyOrder(t *testing.T) {
	t.Parallel()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("- zeta: 1\n  alpha: true\n- zeta: 2\n  alpha: ~\n"), &doc))
	got, err := microtable.Table(&doc, nil)
	require.NoError(t, err)
	assert.Equal(t, grid(
		"┌─────────┬──────┬───────┐",
		"│ (index) │ zeta │ alpha │",
		"├─────────┼──────┼───────┤",
		"│ 0       │ 1    │ true  │",
		"│ 1       │ 2    │ null  │",
		"└─────────┴──────┴───────┘",
	), got)
}

func TestTableStructFields(t *testing.T) {
	t.Parallel()
	got, err := microtable.Table([]account{{ID: 7, Secret: "x", audited: audited{Created: "today"}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, grid(
		"┌─────────┬────┬─────────┐",
		"│ (index) │ id │ created │",
		"├─────────┼────┼─────────┤",
		"│ 0       │ 7  │ today │",
		"└─────────┴────┴─────────┘",
	), got)
}

func TestTablePropertyFilter(t *testing.T) {
	t.Parallel()
	data := []person{{Name: "Satu", Age: 30}}
	got, err := microtable.Table(data, &microtable.Options{PropertyFilter: []string{"age", "missing"}})
	require.NoError(t, err)
	assert.Equal(t, grid(
		"┌─────────┬─────┬─────────┐",
		"│ (index) │ age │ missing │",
		"├─────────┼─────┼─────────┤",
		"│ 0       │ 30  │         │",
		"└─────────┴─────┴─────────┘",
	), got)
}

func TestTableRowFormatter(t *testing.T) {
	t.Parallel()
	star := microtable.Map(func(s string) string { return strings.ReplaceAll(s, "'", "*") })
	got, err := microtable.Table([]microtable.Record{{{Key: "prop", Value: "00'0"}}, {{Key: "prop", Value: 1}}}, &microtable.Options{
		RowFormatter: []microtable.RowFormatter{star},
	})
	require.NoError(t, err)
	assert.Contains(t, got, "│ 0       │ 00*0 │")
	assert.NotContains(t, got, `"`)
}

func TestTableBorderDouble(t *testing.T) {
	t.Parallel()
	got, err := microtable.Table([]microtable.Record{{{Key: "prop", Value: "12345678910"}}}, &microtable.Options{
		RowFormatter: []microtable.RowFormatter{microtable.Border(microtable.BorderDouble)},
	})
	require.NoError(t, err)
	assert.Equal(t, grid(
		"╔═════════╦═══════════════╗",
		"║ (index) ║ prop          ║",
		"╠═════════╬═══════════════╣",
		"║ 0       ║ 12345678910 ║",
		"╚═════════╩═══════════════╝",
	), got)
}

func TestTableAlignCenter(t *testing.T) {
	t.Parallel()
	data := []microtable.Record{
		{{Key: "num", Value: "12345678910"}},
		{{Key: "num", Value: "213"}},
	}
	got, err := microtable.Table(data, &microtable.Options{
		RowFormatter: []microtable.RowFormatter{microtable.Align(microtable.AlignCenter)},
	})
	require.NoError(t, err)
	assert.Equal(t, grid(
		"┌─────────┬───────────────┐",
		"│ (index) │      num      │",
		"├─────────┼───────────────┤",
		"│    0    │  12345678910  │",
		"│    1    │      213      │",
		"└─────────┴───────────────┘",
	), got)
}

func TestTableIndexColumn(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		formatter microtable.RowFormatter
		want      string
	}{
		"remove": {
			formatter: microtable.RemoveIndexColumn(),
			want: grid(
				"┌────────┐",
				"│ Values │",
				"├────────┤",
				"│ 30     │",
				"│ 55     │",
				"└────────┘",
			),
		},
		"rename": {
			formatter: microtable.RenameIndexColumn("Index"),
			want: grid(
				"┌─────────┬────────┐",
				"│ Index   │ Values │",
				"├─────────┼────────┤",
				"│ 0       │ 30     │",
				"│ 1       │ 55     │",
				"└─────────┴────────┘",
			),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := microtable.Table([]int{30, 55}, &microtable.Options{
				RowFormatter: []microtable.RowFormatter{tt.formatter},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableUnsupportedValue(t *testing.T) {
	t.Parallel()
	tests := map[string]any{
		"channel":       make(chan int),
		"nested func":   []any{func() {}},
		"complex field": microtable.Record{{Key: "c", Value: complex(1, 2)}},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := microtable.Table(data, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, microtable.ErrUnsupportedValue))
		})
	}
}

func TestTableCustomRenderer(t *testing.T) {
	t.Parallel()
	r := &stubRenderer{grid: "│ 'x' │"}
	got, err := microtable.Table("ignored", &microtable.Options{
		Renderer:       r,
		PropertyFilter: []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "│ x │", got)
	assert.Equal(t, []string{"a", "b"}, r.properties)
}

func TestTableLogsEachPass(t *testing.T) {
	t.Parallel()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	_, err := microtable.Table([]int{1}, &microtable.Options{
		RowFormatter: []microtable.RowFormatter{microtable.Align(microtable.AlignRight), nil},
		Logger:       logger,
	})
	require.NoError(t, err)
	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Rendered raw grid.", entries[0].Message)
	assert.Equal(t, "Applied row formatter.", entries[1].Message)
	assert.Equal(t, 1, entries[2].Data["formatter"])
}

// ============================================================
// ConsoleRenderer
// ============================================================

func TestConsoleRendererQuoting(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value string
		cell  string
	}{
		"single quote":  {value: `Should render (')`, cell: `"Should render (')"`},
		"double quote":  {value: `Should render (")`, cell: `'Should render (")'`},
		"backtick":      {value: "Should render (`)", cell: "'Should render (`)'"},
		"both quotes":   {value: `it's "x"`, cell: "`it's \"x\"`"},
		"all three":     {value: "a'b\"c`", cell: `'a\'b"c` + "`'"},
		"empty string":  {value: "", cell: "''"},
		"plain unicode": {value: "żółw", cell: "'żółw'"},
		"newline":       {value: "a\nb", cell: `'a\nb'`},
		"control":       {value: "tab\there\x1b", cell: `'tab\there\x1B'`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := microtable.ConsoleRenderer{}.Render([]microtable.Record{{{Key: "prop", Value: tt.value}}}, nil)
			require.NoError(t, err)
			lines := strings.Split(got, "\n")
			require.Len(t, lines, 6)
			assert.Equal(t, tt.cell, strings.TrimSpace(strings.Split(lines[3], "│")[2]))
		})
	}
}

func TestConsoleRendererRawGrid(t *testing.T) {
	t.Parallel()
	got, err := microtable.ConsoleRenderer{}.Render([]microtable.Record{{{Key: "prop", Value: `Should render (')`}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, grid(
		"┌─────────┬─────────────────────┐",
		"│ (index) │ prop                │",
		"├─────────┼─────────────────────┤",
		"│ 0       │ \"Should render (')\" │",
		"└─────────┴─────────────────────┘",
	), got)
}

func TestConsoleRendererMixedRows(t *testing.T) {
	t.Parallel()
	got, err := microtable.ConsoleRenderer{}.Render([]any{microtable.Record{{Key: "a", Value: 1}}, "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, grid(
		"┌─────────┬───┬────────┐",
		"│ (index) │ a │ Values │",
		"├─────────┼───┼────────┤",
		"│ 0       │ 1 │        │",
		"│ 1       │   │ 'x'    │",
		"└─────────┴───┴────────┘",
	), got)
}

func TestConsoleRendererNestedValues(t *testing.T) {
	t.Parallel()
	data := microtable.Record{
		{Key: "row", Value: microtable.Record{
			{Key: "tags", Value: []string{"a", "b"}},
			{Key: "meta", Value: microtable.Record{{Key: "ok", Value: true}, {Key: "the key", Value: 1.5}}},
			{Key: "none", Value: []int{}},
		}},
	}
	got, err := microtable.ConsoleRenderer{}.Render(data, nil)
	require.NoError(t, err)
	assert.Contains(t, got, "│ row     │ [ 'a', 'b' ] │ { ok: true, 'the key': 1.5 } │ []   │")
}

func TestTableEscapesNewlines(t *testing.T) {
	t.Parallel()
	got, err := microtable.Table([]string{"a\nb", "c"}, nil)
	require.NoError(t, err)
	assert.Equal(t, grid(
		"┌─────────┬────────┐",
		"│ (index) │ Values │",
		"├─────────┼────────┤",
		`│ 0       │ a\nb │`,
		"│ 1       │ c │",
		"└─────────┴────────┘",
	), got)
}

func TestTableYAMLAliasCycle(t *testing.T) {
	t.Parallel()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("&a [1, *a]"), &doc))
	got, err := microtable.Table(&doc, nil)
	require.NoError(t, err)
	assert.Equal(t, grid(
		"┌─────────┬────────────┐",
		"│ (index) │ Values     │",
		"├─────────┼────────────┤",
		"│ 0       │ 1          │",
		"│ 1       │ [Circular] │",
		"└─────────┴────────────┘",
	), got)
}

func TestTableSharedYAMLAlias(t *testing.T) {
	t.Parallel()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("base: &b {x: 1}\ncopy: *b\n"), &doc))
	got, err := microtable.Table(&doc, nil)
	require.NoError(t, err)
	assert.Contains(t, got, "│ base    │ 1 │")
	assert.Contains(t, got, "│ copy    │ 1 │")
	assert.NotContains(t, got, "Circular")
}
