// Package ui holds the confirmation prompts shown before pkgmeta overwrites
// an existing file.
package ui
