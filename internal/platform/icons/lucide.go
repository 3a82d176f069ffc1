package icons

const lucideSymbolPrefix = "lucide-"

var lucideIconNames = map[ID]string{
	IDEdit:    "pencil",
	IDDisable: "archive",
	IDRestore: "archive-restore",
	IDResolve: "git-merge",
	IDSchema:  "file-code",
	IDAlert:   "circle-alert",
}

// LucideName returns the Lucide icon name for an icon identifier.
func LucideName(id ID) (string, bool) {
	name, ok := lucideIconNames[id]
	return name, ok
}

// LucideNameOrDefault provides a stable Lucide name even when the icon ID is unknown.
func LucideNameOrDefault(id ID) string {
	if name, ok := lucideIconNames[id]; ok {
		return name
	}
	return "sparkle"
}

// LucideSymbolID returns the sprite symbol ID for a Lucide icon name.
func LucideSymbolID(name string) string {
	return lucideSymbolPrefix + name
}
