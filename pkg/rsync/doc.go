// Package rsync builds and runs rsync invocations.
package rsync
