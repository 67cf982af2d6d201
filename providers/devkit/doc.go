// Package devkit provides scripted fakes for exercising fetchers and file
// sources without network access.
package devkit
