package utils

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GetFileBaseName extracts the object key from a blob URL or file path.
// e.g. "https://cdn.example.com/photos/abc.jpg" -> "abc.jpg"
func GetFileBaseName(url string) string {
	return path.Base(url)
}

// GetFileExtWithDot returns the extension of a file name including the
// leading dot, or empty string when there is none.
func GetFileExtWithDot(fileName string) string {
	return path.Ext(fileName)
}

// TimestampedObjectKey builds a collision-free object key for an uploaded
// file, keeping the original extension so content type inference still works.
func TimestampedObjectKey(fileName string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), GetFileExtWithDot(fileName))
}

// EmailLocalPart returns everything before the last '@' of an email address.
// Returns the input unchanged when no '@' is present.
func EmailLocalPart(email string) string {
	idx := strings.LastIndex(email, "@")
	if idx == -1 {
		return email
	}
	return email[:idx]
}
