package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Mark
	Play
	Pause
	Loading
	Skip
	Video
	Audio
	Volume
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔᴥᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "👨‍🍳",
		nerd:    "",
		plain:   "...",
		kaomoji: "┐(´～｀)┌",
		squares: "🟦",
	},
	Mark: {
		emoji:   "🔖",
		nerd:    "",
		plain:   "*",
		kaomoji: "(☞ﾟ∀ﾟ)☞",
		squares: "🟨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(ง •̀_•́)ง",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－_－) zzZ",
		squares: "🟧",
	},
	Loading: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "~",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Skip: {
		emoji:   "⏭️",
		nerd:    "",
		plain:   ">>",
		kaomoji: "ε=ε=┌( >_<)┘",
		squares: "🟪",
	},
	Video: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "[v]",
		kaomoji: "(⌐■_■)",
		squares: "🟫",
	},
	Audio: {
		emoji:   "🎧",
		nerd:    "",
		plain:   "[a]",
		kaomoji: "♪~ ᕕ(ᐛ)ᕗ",
		squares: "⬛",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "vol",
		kaomoji: "(☞ ͡° ͜ʖ ͡°)☞",
		squares: "⬜",
	},
}
