package theme

// DefaultThemes returns the built-in light and dark themes.
func DefaultThemes() []Definition {
	return []Definition{
		{
			Name: "light",
			Mode: ModeLight,
			Variables: map[string]string{
				"--ak-color-background":         "#ffffff",
				"--ak-color-border":             "#e5e5e5",
				"--ak-color-destructive":        "#ef4444",
				"--ak-color-foreground":         "#0a0a0a",
				"--ak-color-muted":              "#f5f5f5",
				"--ak-color-muted-foreground":   "#737373",
				"--ak-color-primary":            "#3b82f6",
				"--ak-color-primary-foreground": "#ffffff",
			},
		},
		{
			Name: "dark",
			Mode: ModeDark,
			Variables: map[string]string{
				"--ak-color-background":         "#0a0a0a",
				"--ak-color-border":             "#262626",
				"--ak-color-destructive":        "#ef4444",
				"--ak-color-foreground":         "#fafafa",
				"--ak-color-muted":              "#262626",
				"--ak-color-muted-foreground":   "#a3a3a3",
				"--ak-color-primary":            "#3b82f6",
				"--ak-color-primary-foreground": "#ffffff",
			},
		},
	}
}
