package testutil

import (
	"embed"
	"fmt"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// Users is the in-memory twin of fixtures/users.json.
func Users() table.Data {
	return table.Data{
		Columns: []table.Column{
			{Title: "ID", Width: table.AutoWidth()},
			{Title: "Name", Width: table.FlexibleWidth(4, 20)},
			{Title: "Role", Align: table.Center},
		},
		Rows: []table.Row{
			{ID: "u1", Cells: []string{"1", "Alice", "admin"}},
			{ID: "u2", Cells: []string{"2", "Bob", "dev"}},
			{ID: "u3", Cells: []string{"3", "Carol", "ops"}},
		},
	}
}

// Numbered returns a two-column table with n rows keyed "0".."n-1".
func Numbered(n int) table.Data {
	d := table.Data{Columns: []table.Column{table.Col("ID"), table.Col("Item")}}
	for i := 0; i < n; i++ {
		d.Rows = append(d.Rows, table.NewRow(fmt.Sprint(i), fmt.Sprintf("item %d", i)))
	}
	return d
}
