package stave_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/stave/internal/abc"
)

func readFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// TestGolden walks testdata/*.abc and checks the laws every fixture
// must satisfy: lossless reassembly, the chord-note partition, and
// divide/multiply as exact inverses.
func TestGolden(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	require.NoError(t, err)

	var seen int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".abc") {
			continue
		}
		seen++
		t.Run(strings.TrimSuffix(e.Name(), ".abc"), func(t *testing.T) {
			src := readFixture(t, filepath.Join("testdata", e.Name()))

			root, _, err := abc.Parse(src)
			require.NoError(t, err)
			assert.Equal(t, src, abc.Text(root), "reassembly must be lossless")

			sel := mustParse(t, src)
			all := len(sel.SelectNotes().Cursors)
			inChords := len(sel.SelectChordNotes().Cursors)
			outside := len(sel.SelectNonChordNotes().Cursors)
			assert.Equal(t, all, inChords+outside, "chord notes partition notes")

			sel.DivideRhythm(2)
			sel.MultiplyRhythm(2)
			assert.Equal(t, src, abc.Text(sel.Root), "divide then multiply restores the source")
		})
	}
	require.NotZero(t, seen, "no fixtures found")
}

// TestGolden_Transforms pairs each testdata/golden/<fixture>.<op>.abc
// file with testdata/<fixture>.abc and checks the named transform
// produces exactly the golden text.
func TestGolden_Transforms(t *testing.T) {
	goldens, err := filepath.Glob(filepath.Join("testdata", "golden", "*.abc"))
	require.NoError(t, err)
	require.NotEmpty(t, goldens, "no golden files found")

	for _, path := range goldens {
		name := strings.TrimSuffix(filepath.Base(path), ".abc")
		fixture, op, ok := strings.Cut(name, ".")
		require.True(t, ok, "golden file %s must be named <fixture>.<op>.abc", path)

		t.Run(name, func(t *testing.T) {
			src := readFixture(t, filepath.Join("testdata", fixture+".abc"))
			want := readFixture(t, path)

			sel := mustParse(t, src)
			switch op {
			case "legato":
				sel.Legato()
			case "slash":
				sel.ToSlashNotation(abc.NewContexts(sel.Root))
			case "consolidate":
				sel.Consolidate()
			default:
				t.Fatalf("no transform named %q", op)
			}
			assert.Equal(t, want, abc.Text(sel.Root))
		})
	}
}
