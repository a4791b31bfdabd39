package i18n

import (
	"encoding/json"
	"io/fs"
	"path"
	"sort"
	"strings"
	"testing"
)

// Keys the API and report look up directly; a missing one would surface as a raw key.
var requiredLocaleKeys = []string{
	"error.unauthorized",
	"error.not_found",
	"error.too_many_attempts",
	"phase.menstrual",
	"phase.follicular",
	"phase.ovulation",
	"phase.luteal",
}

func TestEmbeddedLocalesShareKeys(t *testing.T) {
	locales := loadEmbeddedLocales(t)
	reference, ok := locales[LangEN]
	if !ok {
		t.Fatal("embedded locales are missing en")
	}

	for language, messages := range locales {
		if missing := missingKeys(reference, messages); len(missing) > 0 {
			t.Errorf("keys missing in %s locale: %s", language, strings.Join(missing, ", "))
		}
		if extra := missingKeys(messages, reference); len(extra) > 0 {
			t.Errorf("keys only in %s locale: %s", language, strings.Join(extra, ", "))
		}
		for key, value := range messages {
			if strings.TrimSpace(value) == "" {
				t.Errorf("%s locale has empty message for %s", language, key)
			}
		}
	}

	for _, key := range requiredLocaleKeys {
		if _, ok := reference[key]; !ok {
			t.Errorf("required key %s missing", key)
		}
	}
}

func loadEmbeddedLocales(t *testing.T) map[string]map[string]string {
	t.Helper()

	files, err := fs.Glob(embeddedLocales, "locales/*.json")
	if err != nil || len(files) == 0 {
		t.Fatalf("list embedded locales: %v (%d files)", err, len(files))
	}

	locales := make(map[string]map[string]string, len(files))
	for _, file := range files {
		content, err := fs.ReadFile(embeddedLocales, file)
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			t.Fatalf("parse %s: %v", file, err)
		}
		locales[strings.TrimSuffix(path.Base(file), ".json")] = messages
	}
	return locales
}

func missingKeys(source map[string]string, target map[string]string) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
