// Package locale localizes the tools' terminal output. English and Spanish
// message files are embedded; the language comes from the config with
// English as the fallback.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embeddedFiles embed.FS

var localeFiles = []string{
	"locales/en.json",
	"locales/es.json",
}

var localizer *i18n.Localizer

// Init builds the message bundle and selects lang. Must be called before T;
// the commands call it right after loading config.
func Init(lang string) error {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, path := range localeFiles {
		content, err := embeddedFiles.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read embedded locale file %s: %w", path, err)
		}
		if _, err := bundle.ParseMessageFileBytes(content, path); err != nil {
			return fmt.Errorf("failed to parse locale file %s: %w", path, err)
		}
	}

	if lang == "" {
		lang = "en"
	}
	localizer = i18n.NewLocalizer(bundle, lang, "en")
	return nil
}

// MustInit is Init for command startup paths where a broken embedded bundle
// is unrecoverable.
func MustInit(lang string) {
	if err := Init(lang); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to initialize i18n: %v", err)
	}
}

// T localizes a message by ID with optional template data.
func T(messageID string, data map[string]interface{}) string {
	if localizer == nil {
		MustInit("")
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
