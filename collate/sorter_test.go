package collate_test

import (
	"testing"

	"github.com/fwojciec/cssdocs"
	"github.com/fwojciec/cssdocs/collate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// Ensure Sorter implements cssdocs.ValueSorter at compile time.
var _ cssdocs.ValueSorter = (*collate.Sorter)(nil)

func texts(values []*cssdocs.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Value
	}
	return out
}

func TestSorter_Sort(t *testing.T) {
	t.Parallel()

	t.Run("ignores entities and punctuation", func(t *testing.T) {
		t.Parallel()

		values := []*cssdocs.Value{
			{Value: "&amp;Zebra"},
			{Value: "apple"},
			{Value: "Banana!"},
		}

		collate.NewSorter(language.English).Sort(values)

		assert.Equal(t, []string{"apple", "Banana!", "&amp;Zebra"}, texts(values))
	})

	t.Run("ignores markup punctuation", func(t *testing.T) {
		t.Parallel()

		values := []*cssdocs.Value{
			{Value: "<code>none</code>"},
			{Value: "&lt;length&gt;"},
			{Value: "<code>auto</code>"},
		}

		collate.NewSorter(language.English).Sort(values)

		assert.Equal(t, []string{"<code>auto</code>", "<code>none</code>", "&lt;length&gt;"}, texts(values))
	})

	t.Run("keeps order of equal keys", func(t *testing.T) {
		t.Parallel()

		values := []*cssdocs.Value{
			{Value: "auto", Description: "first"},
			{Value: "b"},
			{Value: "'auto'", Description: "second"},
		}

		collate.NewSorter(language.English).Sort(values)

		require.Len(t, values, 3)
		assert.Equal(t, "first", values[0].Description)
		assert.Equal(t, "second", values[1].Description)
		assert.Equal(t, "b", values[2].Value)
	})

	t.Run("applies locale rules", func(t *testing.T) {
		t.Parallel()

		values := []*cssdocs.Value{{Value: "zebra"}, {Value: "ähnlich"}}

		collate.NewSorter(language.German).Sort(values)

		assert.Equal(t, []string{"ähnlich", "zebra"}, texts(values))
	})

	t.Run("handles empty input", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() {
			collate.NewSorter(language.English).Sort(nil)
		})
	})
}

func TestParseLocale(t *testing.T) {
	t.Parallel()

	t.Run("accepts BCP 47 tags", func(t *testing.T) {
		t.Parallel()

		s, err := collate.ParseLocale("de-CH")

		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("rejects malformed locales", func(t *testing.T) {
		t.Parallel()

		_, err := collate.ParseLocale("not a locale!")

		require.Error(t, err)
		assert.Equal(t, cssdocs.ECONFIG, cssdocs.ErrorCode(err))
	})
}
