// Package i18n translates the messages printed by the rebrand CLI.
//
// Catalogs are gettext .po files embedded under locales/ and read through
// gotext. Log field names and file paths are never translated; only the
// human-readable text passed to T and N is.
//
//	i18n.Init("") // language from LANGUAGE, LC_ALL, LC_MESSAGES or LANG
//	fmt.Println(i18n.T("Rebrand a Chromium source tree"))
//	fmt.Printf(i18n.N("%d file", "%d files", n), n)
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Layout: locales/<lang>/LC_MESSAGES/rebrand.po
//
//go:embed all:locales
var locales embed.FS

const domain = "rebrand"

// localeEnv lists the variables consulted by Init, highest priority first.
var localeEnv = []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"}

var catalog *gotext.Locale

// Init loads the catalog for lang, or for the environment's language when
// lang is empty. Call it once before T or N; until then both return their
// input untranslated.
func Init(lang string) {
	if lang == "" {
		lang = envLanguage()
	}
	catalog = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	catalog.AddDomain(domain)
	catalog.SetDomain(domain)
}

// T returns the translation of msgid, or msgid itself.
func T(msgid string) string {
	if catalog == nil {
		return msgid
	}
	return catalog.Get(msgid)
}

// N returns the plural form of a message for n, chosen by the catalog's
// plural formula.
func N(singular, plural string, n int) string {
	if catalog != nil {
		return catalog.GetN(singular, plural, n)
	}
	if n == 1 {
		return singular
	}
	return plural
}

// envLanguage returns the first usable language from localeEnv, without
// its encoding suffix. LANGUAGE may hold a colon-separated list; the first
// entry wins. "C" and "POSIX" select the untranslated messages.
func envLanguage() string {
	for _, name := range localeEnv {
		val := os.Getenv(name)
		if name == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		val, _, _ = strings.Cut(val, ".")
		if val != "" && val != "C" && val != "POSIX" {
			return val
		}
	}
	return "en"
}
