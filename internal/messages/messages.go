// Package messages holds the user-facing notification texts.
package messages

import (
	"embed"
	"encoding/json"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Message IDs.
const (
	HoursSaved      = "HoursSaved"
	LeaveSaved      = "LeaveSaved"
	DayCleared      = "DayCleared"
	SettingsSaved   = "SettingsSaved"
	TimesRequired   = "TimesRequired"
	InvalidTime     = "InvalidTime"
	EndBeforeStart  = "EndBeforeStart"
	InvalidSettings = "InvalidSettings"
	SaveFailed      = "SaveFailed"
	MonthChanged    = "MonthChanged"
	DarkModeOn      = "DarkModeOn"
	DarkModeOff     = "DarkModeOff"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

// Catalog translates message IDs for one language.
type Catalog struct {
	localizer *i18n.Localizer
	languages []string
}

// New loads the embedded locales and picks lang, falling back to English for
// unknown languages and missing messages.
func New(lang string) *Catalog {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	var langs []string
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		log.Error().Err(err).Msg("cannot read embedded locales")
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			log.Error().Err(err).Str("file", name).Msg("cannot load locale")
			continue
		}
		langs = append(langs, strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json"))
	}

	if lang == "" {
		lang = DefaultLanguage
	}
	return &Catalog{
		localizer: i18n.NewLocalizer(bundle, lang, DefaultLanguage),
		languages: langs,
	}
}

// Languages lists the embedded locales.
func (c *Catalog) Languages() []string {
	return c.languages
}

// Text translates id. data fills template fields such as {{.Detail}}.
// Unknown IDs are returned as-is.
func (c *Catalog) Text(id string, data map[string]any) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		log.Debug().Err(err).Str("id", id).Msg("missing translation")
		return id
	}
	return msg
}
