package styles

// LightTheme is the default palette.
var LightTheme = Theme{
	Name: "light",
	Icon: "☀",
	Base: BaseColors{
		Background: "#ffffff",
		Foreground: "#000000",
		Card:       "#f5f5f5",
		Muted:      "#888888",
		Accent:     "#2f80ed",
		Border:     "#dddddd",
	},
	Task: TaskColors{
		Active:    "#000000",
		Completed: "#9e9e9e",
		Selected:  "#2f80ed",
		Editing:   "#1b5e20",
	},
	Chrome: ChromeColors{
		Header:      "#2f80ed",
		Footer:      "#f5f5f5",
		TabActive:   "#2f80ed",
		TabInactive: "#666666",
		Danger:      "#ff4444",
	},
}
