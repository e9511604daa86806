// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package youtube extracts video ids from YouTube links and looks up
// public metadata through the oEmbed endpoint.
package youtube

import (
	"regexp"
)

// idPattern matches watch, embed, v/, shorts-style path and youtu.be links.
// The id is always the 11 characters after the matched prefix.
var idPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractID returns the 11-character video id in rawURL, or "" when the
// string is not a recognizable YouTube link.
func ExtractID(rawURL string) string {
	m := idPattern.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// WatchURL returns the canonical watch URL for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// ThumbnailURL returns the high-quality thumbnail for id, or "" for an
// empty id.
func ThumbnailURL(id string) string {
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}

// EmbedURL returns the iframe embed URL for id, or "" for an empty id.
func EmbedURL(id string) string {
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}
