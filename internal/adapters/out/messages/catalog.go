// Package messages renders the user-facing notification copy from embedded
// go-i18n message files.
package messages

import (
	"embed"
	"fmt"
	"strconv"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Catalog localizes notification titles and bodies.
type Catalog struct {
	localizer *i18n.Localizer
}

// NewCatalog loads every embedded locale and localizes into lang, falling
// back to English for missing messages.
func NewCatalog(lang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if _, err = bundle.LoadMessageFileFS(localeFS, "locales/"+e.Name()); err != nil {
			return nil, fmt.Errorf("load %s: %w", e.Name(), err)
		}
	}

	return &Catalog{localizer: i18n.NewLocalizer(bundle, lang, language.English.String())}, nil
}

// NewJobAlert renders the helper-facing alert. A non-positive distance reads
// as "near you".
func (c *Catalog) NewJobAlert(categoryName, requesterName string, price, distanceKm float64) (string, string, error) {
	title, err := c.localize("notification.new_job.title", map[string]any{"Category": categoryName})
	if err != nil {
		return "", "", err
	}

	var distance string
	if distanceKm > 0 {
		distance, err = c.localize("notification.distance.away", map[string]any{
			"Km": strconv.FormatFloat(distanceKm, 'f', 1, 64),
		})
	} else {
		distance, err = c.localize("notification.distance.near", nil)
	}
	if err != nil {
		return "", "", err
	}

	body, err := c.localize("notification.new_job.body", map[string]any{
		"Requester": requesterName,
		"Price":     FormatPrice(price),
		"Distance":  distance,
	})
	if err != nil {
		return "", "", err
	}

	return title, body, nil
}

// RequestBroadcasted renders the confirmation sent to the requester.
func (c *Catalog) RequestBroadcasted(categoryName string, helpersNotified int) (string, string, error) {
	title, err := c.localize("notification.request_broadcasted.title", nil)
	if err != nil {
		return "", "", err
	}

	body, err := c.localize("notification.request_broadcasted.body", map[string]any{
		"Category": categoryName,
		"Count":    helpersNotified,
	})
	if err != nil {
		return "", "", err
	}

	return title, body, nil
}

func (c *Catalog) localize(id string, data map[string]any) (string, error) {
	return c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
}

// FormatPrice prints a price without trailing zeros: 450 -> "450", 99.5 -> "99.5".
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
