// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package settings

import (
	"bytes"
	"encoding/json"
	"strings"

	"folio/internal/models"
)

// contactPayload is the decoded contact setting. Exactly one of links or
// legacy is populated; both are nil for anything unrecognized.
type contactPayload struct {
	links  []models.ContactLink
	legacy *legacyContact
}

// legacyContact is the original {email, discord} object. Fields are kept
// raw so that non-string values can be judged for truthiness.
type legacyContact struct {
	Email   json.RawMessage `json:"email"`
	Discord json.RawMessage `json:"discord"`
}

// decodeContact picks the payload variant from the first JSON token.
func decodeContact(raw []byte) contactPayload {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return contactPayload{}
	}

	switch raw[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return contactPayload{}
		}
		links := make([]models.ContactLink, 0, len(elems))
		for _, elem := range elems {
			if elem = bytes.TrimSpace(elem); len(elem) == 0 || elem[0] != '{' {
				continue
			}
			var link models.ContactLink
			if err := json.Unmarshal(elem, &link); err != nil {
				continue
			}
			links = append(links, cleanLink(link))
		}
		return contactPayload{links: links}
	case '{':
		var legacy legacyContact
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return contactPayload{}
		}
		return contactPayload{legacy: &legacy}
	}
	return contactPayload{}
}

// cleanLink resolves the icon of a stored link. A retired or unknown icon
// becomes Link and an empty href makes the link display-only.
func cleanLink(link models.ContactLink) models.ContactLink {
	link.Icon = string(link.ResolvedIcon())
	if !link.Clickable() {
		link.Href = nil
	}
	return link
}

// NormalizeContact converts a stored contact value into the current list
// shape. Array elements that are not link objects are skipped and the
// rest go through cleanLink. The legacy {email, discord}
// object yields an "email" link and a "discord" link, in that order, each
// only when its field is truthy. Anything else, including malformed JSON,
// yields an empty list.
func NormalizeContact(raw []byte) []models.ContactLink {
	p := decodeContact(raw)
	switch {
	case p.links != nil:
		return p.links
	case p.legacy != nil:
		return p.legacy.links()
	}
	return []models.ContactLink{}
}

// links synthesizes ContactLink entries from the legacy fields.
func (l *legacyContact) links() []models.ContactLink {
	out := []models.ContactLink{}
	if email, ok := truthy(l.Email); ok {
		href := "mailto:" + email
		out = append(out, models.ContactLink{
			ID:    "email",
			Icon:  string(models.IconMail),
			Label: models.IconMail.Label(),
			Value: email,
			Href:  &href,
		})
	}
	if discord, ok := truthy(l.Discord); ok {
		out = append(out, models.ContactLink{
			ID:    "discord",
			Icon:  string(models.IconMessageCircle),
			Label: models.IconMessageCircle.Label(),
			Value: discord,
		})
	}
	return out
}

// truthy reports whether a raw JSON value counts as present, returning its
// display text. Empty strings, false, null and zero are absent.
func truthy(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	case 'n', 'f':
		return "", false
	case 't':
		return "true", true
	case '{', '[':
		return string(raw), true
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	if f, err := n.Float64(); err != nil || f == 0 {
		return "", false
	}
	return strings.TrimSpace(n.String()), true
}
