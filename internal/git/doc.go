// Package git clones project templates for the new command.
package git
