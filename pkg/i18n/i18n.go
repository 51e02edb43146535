// Package i18n resolves display strings for the filter panels.
package i18n

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// supported is in matcher preference order; the first entry is the default.
var supported = []language.Tag{language.English, language.Spanish}

var translations = map[language.Tag]map[string]string{
	language.English: {
		"allVaults":                       "All vaults",
		"myVault":                         "My vault",
		"allItems":                        "All items",
		"allFolders":                      "All folders",
		"allCollections":                  "All collections",
		"noneFolder":                      "No folder",
		"favorites":                       "Favorites",
		"typeLogin":                       "Login",
		"typeCard":                        "Card",
		"typeIdentity":                    "Identity",
		"typeSecureNote":                  "Secure note",
		"trash":                           "Trash",
		"HeadTrash":                       "Trash",
		"organizations":                   "Vaults",
		"types":                           "Types",
		"folders":                         "Folders",
		"collections":                     "Collections",
		"newOrganization":                 "New organization",
		"editFolder":                      "Edit folder",
		"Add Folder":                      "Add folder",
		"disabledOrganizationFilterError": "Items in suspended organizations cannot be accessed. Contact your organization owner for assistance.",
		"searchFavorites":                 "Search favorites",
		"searchTrash":                     "Search trash",
		"searchLogin":                     "Search logins",
		"searchCard":                      "Search cards",
		"searchIdentity":                  "Search identities",
		"searchSecureNote":                "Search secure notes",
		"searchFolder":                    "Search folder",
		"searchCollection":                "Search collection",
		"searchMyVault":                   "Search my vault",
		"searchOrganization":              "Search organization",
		"searchVault":                     "Search vault",
		"loading":                         "Loading vault...",
		"activeFilter":                    "Active filter",
		"search":                          "Search",
	},
	language.Spanish: {
		"allVaults":                       "Todas las cajas fuertes",
		"myVault":                         "Mi caja fuerte",
		"allItems":                        "Todos los elementos",
		"allFolders":                      "Todas las carpetas",
		"allCollections":                  "Todas las colecciones",
		"noneFolder":                      "Sin carpeta",
		"favorites":                       "Favoritos",
		"typeLogin":                       "Inicio de sesión",
		"typeCard":                        "Tarjeta",
		"typeIdentity":                    "Identidad",
		"typeSecureNote":                  "Nota segura",
		"trash":                           "Papelera",
		"HeadTrash":                       "Papelera",
		"organizations":                   "Cajas fuertes",
		"types":                           "Tipos",
		"folders":                         "Carpetas",
		"collections":                     "Colecciones",
		"newOrganization":                 "Nueva organización",
		"editFolder":                      "Editar carpeta",
		"Add Folder":                      "Añadir carpeta",
		"disabledOrganizationFilterError": "No se puede acceder a los elementos de organizaciones suspendidas.",
		"searchFavorites":                 "Buscar en favoritos",
		"searchTrash":                     "Buscar en la papelera",
		"searchLogin":                     "Buscar inicios de sesión",
		"searchCard":                      "Buscar tarjetas",
		"searchIdentity":                  "Buscar identidades",
		"searchSecureNote":                "Buscar notas seguras",
		"searchFolder":                    "Buscar en la carpeta",
		"searchCollection":                "Buscar en la colección",
		"searchMyVault":                   "Buscar en mi caja fuerte",
		"searchOrganization":              "Buscar en la organización",
		"searchVault":                     "Buscar en la caja fuerte",
		"loading":                         "Cargando caja fuerte...",
		"activeFilter":                    "Filtro activo",
		"search":                          "Buscar",
	},
}

// Translator looks keys up in the message catalog. Unknown keys are
// returned unchanged.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
	known   map[string]bool
	title   cases.Caser
}

// New returns a Translator for the closest supported language to lang, a
// BCP 47 tag such as "en" or "es-MX". Unparseable tags fall back to English.
func New(lang string) *Translator {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	known := make(map[string]bool)
	for tag, msgs := range translations {
		for key, msg := range msgs {
			// SetString only fails for malformed messages.
			_ = b.SetString(tag, key, msg)
			known[key] = true
		}
	}

	requested, err := language.Parse(lang)
	if err != nil {
		requested = language.English
	}
	_, index, _ := language.NewMatcher(supported).Match(requested)
	tag := supported[index]

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b)),
		known:   known,
		title:   cases.Title(tag),
	}
}

// Language returns the matched catalog language.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// T translates key.
func (t *Translator) T(key string) string {
	if !t.known[key] {
		return key
	}
	return t.printer.Sprintf(key)
}

// Header translates key for use as a panel title.
func (t *Translator) Header(key string) string {
	return t.title.String(t.T(key))
}

// Supported lists the catalog languages.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}
