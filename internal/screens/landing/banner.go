package landing

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

const bannerArt = `
 ___ _                    ___       _    
| _ ) |___  ___ _ __     / _ \ _  _(_)___
| _ \ / _ \/ _ \ '  \   | (_) | || | |_ /
|___/_\___/\___/_|_|_|   \__\_\\_,_|_/__|`

const bannerCompact = "B L O O M Q U I Z"

// RenderBanner returns the banner in the primary color, falling back to a
// compact line on terminals narrower than 48 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 48 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
