package icons

// Nerd Font icons for the lazyvault panels.
// See: https://www.nerdfonts.com/cheat-sheet

var enabled = true

// IsEnabled returns whether icons are enabled
func IsEnabled() bool {
	return enabled
}

// SetEnabled enables or disables icons globally
func SetEnabled(e bool) {
	enabled = e
	if !e {
		disableAllIcons()
	}
}

var (
	// Panel title icons
	VAULT_ICON        = "\U000f0498" // 󰒘 (shield)
	ORGANIZATION_ICON = "\U000f00d2" // 󰃒 (domain)
	TYPE_ICON         = "\U000f0dd7" // 󰷗 (shape)
	FOLDER_ICON       = "\U000f024b" // 󰉋 (folder)
	COLLECTION_ICON   = "\U000f0770" // 󰝰 (folder-open)
	TRASH_ICON        = "\U000f0a7a" // 󰩺 (trash)
	DETAILS_ICON      = "\U000f0219" // 󰈙 (file-document)
	COMMAND_ICON      = "\U000f018d" // 󰆍 (console)
	KEYBOARD_ICON     = "\U000f030c" // 󰌌 (keyboard)

	// Node icons
	USER     = "\U000f0004" // 󰀄 (account)
	BUSINESS = "\U000f00d2" // 󰃒
	LOGIN    = "\U000f0306" // 󰌆 (key)
	CARD     = "\U000f0fef" // 󰿯 (credit-card)
	IDENTITY = "\U000f05ed" // 󰗭 (card-account-details)
	NOTE     = "\U000f039b" // 󰎛 (note)
	STAR     = "\U000f04ce" // 󰓎 (star)
	DOCUMENT = "\U000f0219" // 󰈙

	// Status icons
	SELECTED = "\U000f012c" // 󰄬 (check)
	LOADING  = "\U000f0772" // 󰝲 (loading)
	ERROR    = "\U000f0159" // 󰅙 (close-circle)
	SUCCESS  = "\U000f0134" // 󰄴 (check-circle)
	WARNING  = "\U000f0026" // 󰀦 (alert)
	DISABLED = "\U000f0073" // 󰁳 (cancel)

	// Navigation
	ARROW_EXPAND   = "\U000f0142" // 󰅂
	ARROW_COLLAPSE = "\U000f0140" // 󰅀
)

// disableAllIcons sets all icons to empty strings for graceful fallback
func disableAllIcons() {
	VAULT_ICON = ""
	ORGANIZATION_ICON = ""
	TYPE_ICON = ""
	FOLDER_ICON = ""
	COLLECTION_ICON = ""
	TRASH_ICON = ""
	DETAILS_ICON = ""
	COMMAND_ICON = ""
	KEYBOARD_ICON = ""
	USER = ""
	BUSINESS = ""
	LOGIN = ""
	CARD = ""
	IDENTITY = ""
	NOTE = ""
	STAR = ""
	DOCUMENT = ""
	SELECTED = "✓"
	LOADING = "…"
	ERROR = "✗"
	SUCCESS = "✓"
	WARNING = "!"
	DISABLED = "x"
	ARROW_EXPAND = "+"
	ARROW_COLLAPSE = "-"
}

// PatchForNerdFontsV2 updates icons for Nerd Fonts v2 compatibility
func PatchForNerdFontsV2() {
	FOLDER_ICON = "\uf07b"
	COLLECTION_ICON = "\uf07c"
	DOCUMENT = "\uf0f6"
	TRASH_ICON = "\uf1f8"
	STAR = "\uf005"
}

// ForNode maps the icon class names carried by filter nodes to glyphs.
func ForNode(class string) string {
	switch class {
	case "bwi-vault":
		return VAULT_ICON
	case "bwi-user":
		return USER
	case "bwi-business":
		return BUSINESS
	case "bwi-folder":
		return FOLDER_ICON
	case "bwi-collection":
		return COLLECTION_ICON
	case "bwi-globe":
		return LOGIN
	case "bwi-credit-card":
		return CARD
	case "bwi-id-card":
		return IDENTITY
	case "bwi-sticky-note":
		return NOTE
	case "bwi-star":
		return STAR
	case "bwi-trash":
		return TRASH_ICON
	case "bwi-filter":
		return TYPE_ICON
	default:
		return DOCUMENT
	}
}
