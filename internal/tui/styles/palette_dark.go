package styles

// DarkTheme is the dark palette.
var DarkTheme = Theme{
	Name: "dark",
	Icon: "☾",
	Base: BaseColors{
		Background: "#121212",
		Foreground: "#ffffff",
		Card:       "#1e1e1e",
		Muted:      "#9e9e9e",
		Accent:     "#82b1ff",
		Border:     "#333333",
	},
	Task: TaskColors{
		Active:    "#ffffff",
		Completed: "#757575",
		Selected:  "#82b1ff",
		Editing:   "#a5d6a7",
	},
	Chrome: ChromeColors{
		Header:      "#82b1ff",
		Footer:      "#1e1e1e",
		TabActive:   "#82b1ff",
		TabInactive: "#9e9e9e",
		Danger:      "#ff4444",
	},
}
