package i18n

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testBundle(t *testing.T, opts ...Option) *Bundle {
	t.Helper()
	trees, err := EmbeddedTrees()
	require.NoError(t, err)
	return NewBundle(trees, opts...)
}

func TestResolvePrefersRequestedLocale(t *testing.T) {
	t.Parallel()

	b := testBundle(t)
	require.Equal(t, "Inicio", b.T(Spanish, "nav.home"))
	require.Equal(t, "Home", b.T(English, "nav.home"))

	v := b.Resolve(Spanish, "nav.home")
	require.True(t, v.Found())
	require.Equal(t, Spanish, v.Locale())
}

func TestResolveFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	b := testBundle(t)
	v := b.Resolve(Spanish, "nav.stories")
	require.True(t, v.Found())
	require.Equal(t, English, v.Locale())
	require.Equal(t, "Expat Stories", v.String())
}

func TestResolveMissingKeyReturnsKeyAndWarns(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	b := testBundle(t, WithLogger(zap.New(core)))

	for _, key := range []string{"nav.nonexistent", "nav.home.deeper", "", "nav..home"} {
		v := b.Resolve(Spanish, key)
		require.False(t, v.Found(), key)
		require.Equal(t, key, v.String())
	}
	entries := logs.FilterMessage("translation key not found").All()
	require.Len(t, entries, 4)
	require.Equal(t, "nav.nonexistent", entries[0].ContextMap()["key"])
	require.Equal(t, "es", entries[0].ContextMap()["locale"])
}

func TestResolveSubTree(t *testing.T) {
	t.Parallel()

	b := testBundle(t)
	v := b.Resolve(Spanish, "contact.form")
	require.True(t, v.IsTree())
	require.Equal(t, "contact.form", v.String())

	labels := v.Strings()
	require.Equal(t, "Tu nombre", labels["name"])
	require.Equal(t, "Enviar mensaje", labels["submit"])

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Tu nombre","email":"Correo electrónico","message":"¿Cómo podemos ayudarte?","submit":"Enviar mensaje"}`, string(raw))
}

func TestResolveUnknownLocaleUsesFallback(t *testing.T) {
	t.Parallel()

	b := testBundle(t)
	require.Equal(t, "Home", b.T(Locale("pt"), "nav.home"))
}

func TestNilBundleDegradesToKey(t *testing.T) {
	t.Parallel()

	var b *Bundle
	require.Equal(t, "nav.home", b.T(English, "nav.home"))
}

func TestMissingListsUntranslatedKeys(t *testing.T) {
	t.Parallel()

	b := testBundle(t)
	missing := b.Missing(Spanish)
	require.Contains(t, missing, "nav.stories")
	require.Contains(t, missing, "blog.updated")
	require.NotContains(t, missing, "nav.home")
	require.Empty(t, b.Missing(English))
}

func TestLoadTreesSanitizesMarkup(t *testing.T) {
	t.Parallel()

	trees, err := LoadTrees(fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"footer":{"disclaimer":"Not <strong>legal advice</strong>.<script>alert(1)</script>"}}`)},
		"locales/es.json": {Data: []byte(`{"footer":{"disclaimer":"<b>Ojo</b> &lt;script&gt;alert(1)&lt;/script&gt;"}}`)},
	})
	require.NoError(t, err)
	b := NewBundle(trees)

	require.Equal(t, "Not <strong>legal advice</strong>.", b.T(English, "footer.disclaimer"))

	// Encoded tags stay encoded rather than turning into live markup.
	es := b.T(Spanish, "footer.disclaimer")
	require.Contains(t, es, "<b>Ojo</b>")
	require.NotContains(t, es, "<script>")
}

func TestLoadTreesKeepsTextCharacters(t *testing.T) {
	t.Parallel()

	trees, err := LoadTrees(fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"visa":{"age":"Applicants under <18 need a parent's consent","rich":"Tom & Jerry's <b>guide</b>","entity":"R&amp;D"}}`)},
	})
	require.NoError(t, err)
	b := NewBundle(trees)

	require.Equal(t, "Applicants under <18 need a parent's consent", b.T(Spanish, "visa.age"))
	require.Equal(t, "Tom & Jerry's <b>guide</b>", b.T(Spanish, "visa.rich"))
	require.Equal(t, "R&amp;D", b.T(English, "visa.entity"))
}

func TestEmbeddedTreesKeepMarkup(t *testing.T) {
	t.Parallel()

	b := testBundle(t)
	require.Equal(t, "La información de este sitio es orientativa y no constituye <strong>asesoramiento legal</strong>.", b.T(Spanish, "footer.disclaimer"))
	require.Equal(t, "¿Cómo podemos ayudarte?", b.T(Spanish, "contact.form.message"))
}

func TestLoadTreesRequiresFallback(t *testing.T) {
	t.Parallel()

	_, err := LoadTrees(fstest.MapFS{
		"locales/es.json": {Data: []byte(`{"nav":{"home":"Inicio"}}`)},
	})
	require.Error(t, err)
}

func TestLoadTreesToleratesMissingSecondaryLocale(t *testing.T) {
	t.Parallel()

	trees, err := LoadTrees(fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"nav":{"home":"Home"}}`)},
	})
	require.NoError(t, err)
	require.Len(t, trees, 1)

	b := NewBundle(trees)
	require.Equal(t, "Home", b.T(Spanish, "nav.home"))
}

func TestLoadTreesRejectsNonStringLeaves(t *testing.T) {
	t.Parallel()

	_, err := LoadTrees(fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"nav":{"count":3}}`)},
	})
	require.ErrorContains(t, err, "nav.count")
}

func TestTreeKeysSorted(t *testing.T) {
	t.Parallel()

	tree := Tree{"b": "x", "a": Tree{"z": "1", "y": "2"}}
	require.Equal(t, []string{"a.y", "a.z", "b"}, tree.Keys())
}

func TestParseLocale(t *testing.T) {
	t.Parallel()

	l, err := ParseLocale(" ES ")
	require.NoError(t, err)
	require.Equal(t, Spanish, l)

	_, err = ParseLocale("pt")
	require.ErrorIs(t, err, ErrUnsupportedLocale)
	require.False(t, Locale("fr").IsSupported())
	require.Equal(t, []Locale{English, Spanish}, Supported())
}

func TestDetect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header string
		want   Locale
		ok     bool
	}{
		{"es-AR,es;q=0.9,en;q=0.8", Spanish, true},
		{"es", Spanish, true},
		{"en-US,en;q=0.9", English, true},
		{"es;q=0.5, en;q=0.9", English, true},
		{"ja", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := Detect(tc.header)
		require.Equal(t, tc.ok, ok, tc.header)
		require.Equal(t, tc.want, got, tc.header)
	}
}
