package ui

import (
	"strings"

	"github.com/cdoyle/lister-tui/internal/config"
	"github.com/cdoyle/lister-tui/internal/list"
	"github.com/cdoyle/lister-tui/internal/presenter"
)

// RenderGlance renders a one-shot snapshot of a document's outstanding
// items, the companion surface to the interactive app. It filters through
// an IncompleteItemsPresenter so the displayed set follows the same rules
// as a live glance view.
func RenderGlance(name string, l *list.List, theme config.ThemeConfig) string {
	styles := NewStyles(theme)

	p := presenter.NewIncompleteItemsPresenter()
	p.Replace(l)
	items := p.PresentedItems()

	var b strings.Builder
	colorStyle := styles.ListColor(p.Color())
	b.WriteString(colorStyle.Render("●") + " " + styles.Title.Render(name))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(styles.Subtle.Render("  all done"))
		b.WriteString("\n")
		return b.String()
	}

	for _, it := range items {
		box := "[ ]"
		style := styles.ItemUnselected
		if it.Complete {
			box = "[x]"
			style = styles.ItemComplete
		}
		b.WriteString("  " + box + " " + style.Render(it.Text))
		b.WriteString("\n")
	}
	return b.String()
}
