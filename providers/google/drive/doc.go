// Package drive downloads raw file content from the Google Drive v3 API.
package drive
