// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - JPL Horizons ephemeris provider, JSON export, summary table, progress view
// 0.2.0 - Planets from orbital elements, astronomical twilight, season markers
// 0.1.0 - Initial release: annual Sun rise/set chart
