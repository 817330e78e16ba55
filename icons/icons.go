// Package icons maps file paths to Nerd Font glyphs and display colors.
package icons

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	folderIcon  = "" //
	defaultIcon = "" //
)

// ForPath returns the glyph and color for a path. Well-known file names
// are checked first, then the extension.
func ForPath(path string, isDir bool) (string, lipgloss.Color) {
	if isDir {
		return folderIcon, lipgloss.Color("4")
	}

	icon := defaultIcon
	switch filepath.Base(path) {
	case "go.mod", "go.sum":
		icon = "" //
	case ".gitignore", ".gitattributes":
		icon = "" //
	case "LICENSE":
		icon = ""
	case "README.md":
		icon = ""
	case "Dockerfile":
		icon = ""
	case "Makefile", "makefile":
		icon = ""
	default:
		switch strings.TrimPrefix(filepath.Ext(path), ".") {
		case "go":
			icon = ""
		case "rs":
			icon = ""
		case "py":
			icon = ""
		case "js":
			icon = ""
		case "ts", "tsx":
			icon = ""
		case "java":
			icon = ""
		case "html":
			icon = ""
		case "css", "scss":
			icon = ""
		case "toml":
			icon = ""
		case "json":
			icon = ""
		case "yaml", "yml":
			icon = "\U000f05c8" // 󰗈
		case "zip", "gz", "tar":
			icon = ""
		case "md":
			icon = ""
		case "sh", "bash", "zsh":
			icon = ""
		}
	}

	var color lipgloss.Color
	switch icon {
	case "", "":
		color = lipgloss.Color("1") // red
	case "", "":
		color = lipgloss.Color("3") // yellow
	case "":
		color = lipgloss.Color("8") // bright black
	case "", "\U000f05c8", "":
		color = lipgloss.Color("11") // bright yellow
	case "":
		color = lipgloss.Color("3")
	default:
		color = lipgloss.Color("7") // white
	}

	return icon, color
}
