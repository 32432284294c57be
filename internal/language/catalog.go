package language

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Auto is the source-language hint meaning "let the recognizer detect it".
// It is never a valid translation target.
const Auto = "Auto"

type entry struct {
	name string // Capitalized display name
	code string // translation-service code
}

// Catalog order is alphabetical by name; lookup goes through the index maps.
var catalog = []entry{
	{"Afrikaans", "af"},
	{"Albanian", "sq"},
	{"Amharic", "am"},
	{"Arabic", "ar"},
	{"Armenian", "hy"},
	{"Bengali", "bn"},
	{"Bulgarian", "bg"},
	{"Burmese", "my"},
	{"Chinese (Simplified)", "zh-CN"},
	{"Chinese (Traditional)", "zh-TW"},
	{"Croatian", "hr"},
	{"Czech", "cs"},
	{"Danish", "da"},
	{"Dutch", "nl"},
	{"English", "en"},
	{"Estonian", "et"},
	{"Finnish", "fi"},
	{"French", "fr"},
	{"Georgian", "ka"},
	{"German", "de"},
	{"Greek", "el"},
	{"Gujarati", "gu"},
	{"Hebrew", "iw"},
	{"Hindi", "hi"},
	{"Hungarian", "hu"},
	{"Indonesian", "id"},
	{"Italian", "it"},
	{"Japanese", "ja"},
	{"Kannada", "kn"},
	{"Khmer", "km"},
	{"Korean", "ko"},
	{"Lao", "lo"},
	{"Latvian", "lv"},
	{"Lithuanian", "lt"},
	{"Malay", "ms"},
	{"Malayalam", "ml"},
	{"Marathi", "mr"},
	{"Norwegian", "no"},
	{"Persian", "fa"},
	{"Polish", "pl"},
	{"Portuguese", "pt"},
	{"Punjabi", "pa"},
	{"Romanian", "ro"},
	{"Russian", "ru"},
	{"Serbian", "sr"},
	{"Slovak", "sk"},
	{"Slovenian", "sl"},
	{"Spanish", "es"},
	{"Swahili", "sw"},
	{"Swedish", "sv"},
	{"Tamil", "ta"},
	{"Telugu", "te"},
	{"Thai", "th"},
	{"Turkish", "tr"},
	{"Ukrainian", "uk"},
	{"Urdu", "ur"},
	{"Vietnamese", "vi"},
}

var (
	byName map[string]string
	byCode map[string]string
	titler = cases.Title(language.Und)
)

func init() {
	byName = make(map[string]string, len(catalog))
	byCode = make(map[string]string, len(catalog))
	for _, e := range catalog {
		byName[e.name] = e.code
		if _, ok := byCode[e.code]; !ok {
			byCode[e.code] = e.name
		}
	}
}

// canonical normalizes user input to the catalog's capitalization, so that
// "french", "FRENCH", and "French" all resolve.
func canonical(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if _, ok := byName[name]; ok {
		return name
	}
	return titler.String(strings.ToLower(name))
}

// Resolve maps a human-readable language name to its translation code.
// The boolean is false for names outside the catalog, including Auto.
func Resolve(name string) (string, bool) {
	code, ok := byName[canonical(name)]
	return code, ok
}

// ResolveHint maps a source-language hint to a recognizer language code.
// Auto (or empty) returns an empty code, meaning detect automatically.
func ResolveHint(name string) (string, bool) {
	if IsAuto(name) {
		return "", true
	}
	return Resolve(name)
}

// IsAuto reports whether the hint requests language auto-detection.
func IsAuto(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || strings.EqualFold(name, Auto)
}

// NameForCode returns the display name for a translation code, or the
// upper-cased code when unknown.
func NameForCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Unknown"
	}
	if name, ok := byCode[code]; ok {
		return name
	}
	if name, ok := byCode[strings.ToLower(code)]; ok {
		return name
	}
	return strings.ToUpper(code)
}

// Names returns the catalog's display names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, e := range catalog {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}
