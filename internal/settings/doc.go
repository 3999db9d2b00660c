// Package settings reads and writes the application settings file.
//
// Settings live at <user config dir>/ollie/settings.json. When the file
// does not exist, Load returns defaults (local server, light theme)
// without creating it; Save creates the directory as needed.
package settings
