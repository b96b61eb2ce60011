package cli

// Version is the release version reported by the version subcommand and
// compared against GitHub releases by the update subcommand.
const Version = "1.2.0"
