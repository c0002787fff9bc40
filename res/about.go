// Package res holds static content shown by the user interface.
package res

// AboutContent contains the Markdown content for the About dialog.
// This is maintained separately for easy updates.
const AboutContent = `A playlist player built with Go and Fyne.

**Features:**
- Plays MP3 and WAV collections as one continuous playlist
- Spinning cover art taken from the tags or a cover image
- Drag the progress bar to seek, or use the arrow keys
- Loop a single track with the loop toggle

**Shortcuts:**
- Space: play / pause
- Left / Right: seek 10 seconds
- Alt+Left / Alt+Right: previous / next track
- Alt+L: loop
`
