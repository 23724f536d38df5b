package i18n

// PreferenceStore is the single persistence boundary for the chosen locale.
// The HTTP layer backs it with a cookie.
type PreferenceStore interface {
	Load() (string, bool)
	Save(value string)
}

// MemoryStore is an in-process PreferenceStore.
type MemoryStore struct {
	value string
	set   bool
}

// Load implements PreferenceStore.
func (m *MemoryStore) Load() (string, bool) { return m.value, m.set }

// Save implements PreferenceStore.
func (m *MemoryStore) Save(value string) { m.value, m.set = value, true }

// State is one visitor's current locale. It is created once per session or
// request and passed explicitly; SetLocale is the only mutation.
type State struct {
	locale Locale
	store  PreferenceStore
	bundle *Bundle
}

// NewState runs the init transition: a supported persisted preference wins,
// then the Accept-Language heuristic, then the fallback locale.
func NewState(bundle *Bundle, store PreferenceStore, acceptLanguage string) *State {
	s := &State{locale: Fallback, store: store, bundle: bundle}
	if store != nil {
		if saved, ok := store.Load(); ok {
			if l, err := ParseLocale(saved); err == nil {
				s.locale = l
				return s
			}
		}
	}
	if l, ok := Detect(acceptLanguage); ok {
		s.locale = l
	}
	return s
}

// Locale returns the current locale.
func (s *State) Locale() Locale {
	if s == nil {
		return Fallback
	}
	return s.locale
}

// SetLocale applies and persists value. Unsupported values are ignored and
// leave the current locale in place; the return reports whether it applied.
func (s *State) SetLocale(value string) bool {
	l, err := ParseLocale(value)
	if err != nil || s == nil {
		return false
	}
	s.locale = l
	if s.store != nil {
		s.store.Save(string(l))
	}
	return true
}

// Resolve looks key up in the current locale.
func (s *State) Resolve(key string) Value {
	if s == nil {
		return Value{key: key, text: key}
	}
	return s.bundle.Resolve(s.locale, key)
}

// T returns the text for key in the current locale.
func (s *State) T(key string) string {
	return s.Resolve(key).String()
}
