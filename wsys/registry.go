package wsys

import (
	"fmt"
	"slices"
	"sync"

	jj "github.com/cloudfoundry/jibber_jabber"
	"github.com/npillmayer/textrun"
	"golang.org/x/text/language"
)

// WritingSystem describes the language and script behind a writing
// system id.
type WritingSystem struct {
	ID        int
	Tag       language.Tag    // BCP 47 language tag, may carry collation extensions
	Script    language.Script // ISO 15924 script identifier
	eastAsian bool
}

// IsEastAsian is true for writing systems of scripts which do not separate
// words by spaces, such as Chinese, Japanese or Thai.
func (ws *WritingSystem) IsEastAsian() bool {
	return ws.eastAsian
}

func (ws *WritingSystem) String() string {
	return fmt.Sprintf("ws%d(%s)", ws.ID, ws.Tag)
}

func newWritingSystem(id int, tag language.Tag) *WritingSystem {
	script, _ := tag.Script()
	return &WritingSystem{
		ID:        id,
		Tag:       tag,
		Script:    script,
		eastAsian: isEastAsian(script, tag),
	}
}

func isEastAsian(script language.Script, lang language.Tag) bool {
	switch script.String() {
	case
		// East Asian
		"Bopo", "Hanb", "Hani", "Hans",
		"Hant", "Hira", "Kana", "Jpan",
		"Lana",
		// South East Asian
		"Batk", "Bugi", "Mymr", "Cham",
		"Java", "Khmr", "Laoo", "Lisu",
		"Mtei", "Thai", "Yiii", "Bali",
		"Tglg", "Buhd", "Tagb":
		return true
	}
	base, _ := lang.Base()
	switch base.String() {
	case "zh", "ja", "th", "my", "km", "lo":
		return true
	}
	return false
}

// Registry maps writing system ids to writing systems.
// Id 0 is reserved for "unspecified" and resolves to the default writing
// system, if one has been set.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	systems map[int]*WritingSystem
	dflt    int
	matcher language.Matcher // nil if stale
	order   []int            // ids in matcher order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{systems: make(map[int]*WritingSystem)}
}

// Register adds a writing system with id for language tag lang, replacing
// an existing registration for id. Ids have to be positive.
func (r *Registry) Register(id int, lang string) (*WritingSystem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("writing system id %d: %w", id, textrun.ErrInvalidArgument)
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("writing system %d: %w", id, err)
	}
	ws := newWritingSystem(id, tag)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.systems[id] = ws
	r.matcher = nil
	T().Debugf("wsys: registered %s, script %s", ws, ws.Script)
	return ws, nil
}

// SetDefault sets the writing system id 0 resolves to.
func (r *Registry) SetDefault(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.systems[id]; !ok {
		return fmt.Errorf("default writing system %d not registered: %w", id, textrun.ErrInvalidArgument)
	}
	r.dflt = id
	return nil
}

// Lookup finds the writing system for id.
func (r *Registry) Lookup(id int) (*WritingSystem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id == 0 {
		id = r.dflt
	}
	ws, ok := r.systems[id]
	return ws, ok
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ids()
}

func (r *Registry) ids() []int {
	ids := make([]int, 0, len(r.systems))
	for id := range r.systems {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Match finds the registered writing system best matching a locale.
// If nothing is registered, or no writing system matches at all, Match
// returns nil and language.No.
func (r *Registry) Match(locale string) (*WritingSystem, language.Confidence) {
	tag, err := language.Parse(locale)
	if err != nil {
		T().Infof("wsys: cannot match locale %q: %v", locale, err)
		return nil, language.No
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.systems) == 0 {
		return nil, language.No
	}
	if r.matcher == nil {
		r.order = r.ids()
		tags := make([]language.Tag, len(r.order))
		for i, id := range r.order {
			tags[i] = r.systems[id].Tag
		}
		r.matcher = language.NewMatcher(tags)
	}
	_, inx, confidence := r.matcher.Match(tag)
	if confidence == language.No {
		return nil, confidence
	}
	return r.systems[r.order[inx]], confidence
}

// DefaultFromEnvironment sets the default writing system to the one
// matching the locale of the user environment. It returns the writing
// system selected, or false if no registered writing system matches.
func (r *Registry) DefaultFromEnvironment() (*WritingSystem, bool) {
	ws, confidence := r.Match(FromEnvironment().String())
	if ws == nil {
		return nil, false
	}
	T().Infof("wsys: default writing system is %s (confidence %s)", ws, confidence)
	r.SetDefault(ws.ID)
	return ws, true
}

// FromEnvironment returns the language of the user environment, as
// reported by the operating system. If it cannot be detected, "en-US" is
// assumed.
func FromEnvironment() language.Tag {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		T().Errorf("wsys: cannot detect user locale: %v", err)
		userLocale = "en-US"
		T().Infof("wsys sets default user locale %v", userLocale)
	} else {
		T().Infof("wsys detected user locale %v", userLocale)
	}
	return language.Make(userLocale)
}
