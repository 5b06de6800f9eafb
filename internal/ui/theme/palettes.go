package theme

// DefaultName is the theme used when configuration names none.
const DefaultName = "tokyonight"

var tokyoNight = Palette{
	PrimaryColor:             ac("#2e7de9", "#82aaff"),
	SecondaryColor:           ac("#9854f1", "#c099ff"),
	AccentColor:              ac("#b15c00", "#ff966c"),
	ErrorColor:               ac("#f52a65", "#ff757f"),
	WarningColor:             ac("#b15c00", "#ff966c"),
	SuccessColor:             ac("#587539", "#c3e88d"),
	InfoColor:                ac("#0db9d7", "#7dcfff"),
	TextColor:                ac("#3760bf", "#c8d3f5"),
	TextMutedColor:           ac("#848cb5", "#636da6"),
	TextEmphasizedColor:      ac("#8c6c3e", "#ffc777"),
	BackgroundColor:          ac("#e1e2e7", "#222436"),
	BackgroundSecondaryColor: ac("#c8c9ce", "#2f334d"),
	BackgroundDarkerColor:    ac("#d5d6db", "#1e2030"),
	BorderNormalColor:        ac("#a8aecb", "#3b4261"),
	BorderFocusedColor:       ac("#2e7de9", "#82aaff"),
	BorderDimColor:           ac("#c8c9ce", "#292e42"),
}

// https://draculatheme.com/contribute
var dracula = Palette{
	PrimaryColor:             ac("#7e57c2", "#bd93f9"),
	SecondaryColor:           ac("#0097a7", "#8be9fd"),
	AccentColor:              ac("#f9a825", "#f1fa8c"),
	ErrorColor:               ac("#d32f2f", "#ff5555"),
	WarningColor:             ac("#ef6c00", "#ffb86c"),
	SuccessColor:             ac("#388e3c", "#50fa7b"),
	InfoColor:                ac("#1976d2", "#8be9fd"),
	TextColor:                ac("#212121", "#f8f8f2"),
	TextMutedColor:           ac("#757575", "#6272a4"),
	TextEmphasizedColor:      ac("#000000", "#f8f8f2"),
	BackgroundColor:          ac("#ffffff", "#282a36"),
	BackgroundSecondaryColor: ac("#e0e0e0", "#44475a"),
	BackgroundDarkerColor:    ac("#bdbdbd", "#1e1f29"),
	BorderNormalColor:        ac("#bdbdbd", "#6272a4"),
	BorderFocusedColor:       ac("#7e57c2", "#bd93f9"),
	BorderDimColor:           ac("#e0e0e0", "#44475a"),
}

// https://www.nordtheme.com/docs/colors-and-palettes
var nord = Palette{
	PrimaryColor:             ac("#5E81AC", "#88C0D0"),
	SecondaryColor:           ac("#81A1C1", "#81A1C1"),
	AccentColor:              ac("#8FBCBB", "#8FBCBB"),
	ErrorColor:               ac("#BF616A", "#BF616A"),
	WarningColor:             ac("#D08770", "#D08770"),
	SuccessColor:             ac("#A3BE8C", "#A3BE8C"),
	InfoColor:                ac("#5E81AC", "#88C0D0"),
	TextColor:                ac("#2E3440", "#ECEFF4"),
	TextMutedColor:           ac("#3B4252", "#8B95A7"),
	TextEmphasizedColor:      ac("#000000", "#ECEFF4"),
	BackgroundColor:          ac("#ECEFF4", "#2E3440"),
	BackgroundSecondaryColor: ac("#E5E9F0", "#3B4252"),
	BackgroundDarkerColor:    ac("#D8DEE9", "#434C5E"),
	BorderNormalColor:        ac("#4C566A", "#434C5E"),
	BorderFocusedColor:       ac("#434C5E", "#4C566A"),
	BorderDimColor:           ac("#4C566A", "#434C5E"),
}

type namedPalette struct {
	name    string
	palette Palette
}

// palettes is the cycling order. The zero Manager starts on the first.
var palettes = []namedPalette{
	{name: DefaultName, palette: tokyoNight},
	{name: "dracula", palette: dracula},
	{name: "nord", palette: nord},
}
