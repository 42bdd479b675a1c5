package ui

import "strings"

// Theme bundles palette + symbols + box borders.
type Theme struct {
	Name                                   string
	Title, Muted, Accent, Success, Error   string
	Rank, Category                         string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
	SymDone, SymRank, SymItem, SymPhoto    string
	Mono                                   bool
}

func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed,
			Rank: "\033[93m", Category: "\033[95m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymRank: "★", SymItem: "◆", SymPhoto: "▣",
		}
	case "mono":
		return Theme{
			Name:     "mono",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "ok", SymRank: "#", SymItem: "-", SymPhoto: "[img]",
			Mono: true,
		}
	default: // classic
		return Theme{
			Name:  "classic",
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed,
			Rank: fgYellow, Category: fgCyan,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymDone: symCheck, SymRank: "★", SymItem: "•", SymPhoto: "▣",
		}
	}
}
