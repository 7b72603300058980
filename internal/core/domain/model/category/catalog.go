package category

import "strings"

// legacySlugNames maps the slugs sent by older clients to canonical catalog names.
var legacySlugNames = map[string]string{
	"electrical":   "Electrical",
	"plumbing":     "Plumbing",
	"ac_repair":    "AC & Appliance Repair",
	"carpentry":    "Carpentry",
	"painting":     "Painting",
	"cleaning":     "Cleaning",
	"pest_control": "Pest Control",
	"home_repair":  "Home Repair & Maintenance",
	"locksmith":    "Locksmith",
	"gardening":    "Gardening & Landscaping",
	"moving":       "Moving & Packing",
	"other":        "Other",
}

// MappedName returns the canonical name for token, falling back to displayName
// and then to DefaultName.
func MappedName(token, displayName string) string {
	if name, ok := legacySlugNames[strings.TrimSpace(token)]; ok {
		return name
	}
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}
	return DefaultName
}

// FirstWord returns the first whitespace separated word of name.
func FirstWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Slugify lowercases name and joins its alphanumeric runs with dashes.
// "AC & Appliance Repair" becomes "ac-appliance-repair".
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
