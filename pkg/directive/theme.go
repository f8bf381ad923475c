package directive

// ThemeTokenPrefix namespaces the manifest tokens header_theme resolves.
// header_theme=danger reads the token "modal.header.danger".
const ThemeTokenPrefix = "modal.header."

func (d *Directive) themeClass(token string) string {
	if d.themes == nil {
		d.logger.Debug("bsmodal: header_theme without theme selector", "tag", d.name, "token", token)
		return ""
	}

	selection, err := d.themes.Select(d.themeName, d.themeVariant)
	if err != nil {
		d.logger.Debug("bsmodal: theme selection failed", "tag", d.name, "theme", d.themeName, "variant", d.themeVariant, "error", err)
		return ""
	}
	if selection == nil || selection.Manifest == nil {
		return ""
	}

	key := ThemeTokenPrefix + token
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		if value := variant.Tokens[key]; value != "" {
			return value
		}
	}
	if value := selection.Manifest.Tokens[key]; value != "" {
		return value
	}

	d.logger.Debug("bsmodal: theme token not found", "tag", d.name, "token", key, "theme", selection.Theme)
	return ""
}

func (d *Directive) headerClass(inv Invocation) string {
	if inv.HeaderTheme == "" {
		return inv.HeaderClass
	}
	themed := d.themeClass(inv.HeaderTheme)
	switch {
	case themed == "":
		return inv.HeaderClass
	case inv.HeaderClass == "":
		return themed
	default:
		return inv.HeaderClass + " " + themed
	}
}
