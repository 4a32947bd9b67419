// Package command implements the long-running operations behind each
// subcommand: building, serving, testing, end-to-end testing, watching and
// project generation.
//
// Handlers honor cancellation through the context they are given. Serve and
// Watch treat a canceled context as a normal shutdown.
package command
