// Package ytvideoid extracts the 11-character video id from the standard
// YouTube url forms.
package ytvideoid

import (
	"regexp"
	"strings"
)

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(?:www\.|m\.)?youtube\.com/watch\?(?:[^#&]*&)*v=([_\-a-zA-Z0-9]{11})`),
	regexp.MustCompile(`^https?://(?:www\.|m\.)?youtube\.com/embed/([_\-a-zA-Z0-9]{11})`),
	regexp.MustCompile(`^https?://youtu\.be/([_\-a-zA-Z0-9]{11})`),
}

var bareIDPattern = regexp.MustCompile(`^[_\-a-zA-Z0-9]{11}$`)

// Parse returns the video id found in the watch, embed or short-link url
// form. A bare 11-character id is returned unchanged. ok is false when no
// id can be found.
func Parse(url string) (string, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", false
	}

	// no url form can match the anchored 11-character pattern, so a bare
	// id never shadows the url patterns below
	if bareIDPattern.MatchString(url) {
		return url, true
	}

	for _, pattern := range urlPatterns {
		if match := pattern.FindStringSubmatch(url); match != nil {
			return match[1], true
		}
	}

	return "", false
}
