package fyne

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/gospin/res"
)

// showAbout opens the About dialog over window.
func showAbout(window fyneapp.Window, title string) {
	content := widget.NewRichTextFromMarkdown(res.AboutContent)
	content.Wrapping = fyneapp.TextWrapWord
	dialog.ShowCustom("About "+title, "Close", content, window)
}
