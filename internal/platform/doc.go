package platform

// Package platform contains OS integration helpers and plain text utilities:
// output directory handling, opening folders in the system file manager,
// URL extraction from pasted text, and the CA bundle export for the yt-dlp
// subprocess.
