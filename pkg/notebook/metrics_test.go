package notebook_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/adapters/memory"
	"github.com/aretw0/quire/pkg/notebook"
)

func TestNotebook_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewPedanticRegistry()
	backend := memory.New()
	require.NoError(t, backend.Write(ctx, notebook.DefaultFileName, []byte(`[
		{"title":"a","content":"","id":"1"},
		{"content":"no title","id":"2"}
	]`)))

	nb := notebook.New(backend, notebook.WithMetrics(reg))
	_, err := nb.Load(ctx)
	require.NoError(t, err)
	nb.Add(note("3", "c"))
	require.NoError(t, nb.Save(ctx))

	failing := notebook.New(&failingBackend{err: errors.New("nope")}, notebook.WithMetrics(prometheus.NewRegistry()))
	_ = failing.Save(ctx)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"quire_notebook_saves_total",
		"quire_notebook_loads_total",
		"quire_notebook_load_warnings_total",
		"quire_notebook_notes",
	}, names)

	series, err := testutil.GatherAndCount(reg, "quire_notebook_saves_total", "quire_notebook_loads_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)

	expected := `
# HELP quire_notebook_notes Notes currently held in memory.
# TYPE quire_notebook_notes gauge
quire_notebook_notes 2
# HELP quire_notebook_load_warnings_total Recoverable parse warnings raised while loading.
# TYPE quire_notebook_load_warnings_total counter
quire_notebook_load_warnings_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"quire_notebook_notes", "quire_notebook_load_warnings_total"))
}
