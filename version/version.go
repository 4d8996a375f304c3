package version

// Version is the current release of the agenda CLI.
const Version = "0.2.1"
