// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "slices"

// Icon is the symbolic name of a contact link icon. The set is closed;
// persisted names outside it resolve to IconLink.
type Icon string

const (
	IconMail          Icon = "Mail"
	IconMessageCircle Icon = "MessageCircle"
	IconTwitter       Icon = "Twitter"
	IconInstagram     Icon = "Instagram"
	IconYoutube       Icon = "Youtube"
	IconGithub        Icon = "Github"
	IconTwitch        Icon = "Twitch"
	IconLinkedin      Icon = "Linkedin"
	IconGlobe         Icon = "Globe"
	IconPhone         Icon = "Phone"
	IconSend          Icon = "Send"
	IconMusic         Icon = "Music"
	IconLink          Icon = "Link"
)

// Icons lists every known icon in display order.
var Icons = []Icon{
	IconMail, IconMessageCircle, IconTwitter, IconInstagram, IconYoutube,
	IconGithub, IconTwitch, IconLinkedin, IconGlobe, IconPhone, IconSend,
	IconMusic, IconLink,
}

// ResolveIcon maps a stored icon name to a known icon. Retired or unknown
// names fall back to IconLink.
func ResolveIcon(name string) Icon {
	if icon := Icon(name); slices.Contains(Icons, icon) {
		return icon
	}
	return IconLink
}

// Label returns the human-readable name shown next to the icon.
func (i Icon) Label() string {
	switch ResolveIcon(string(i)) {
	case IconMail:
		return "Email"
	case IconMessageCircle:
		return "Discord"
	case IconTwitter:
		return "Twitter"
	case IconInstagram:
		return "Instagram"
	case IconYoutube:
		return "YouTube"
	case IconGithub:
		return "GitHub"
	case IconTwitch:
		return "Twitch"
	case IconLinkedin:
		return "LinkedIn"
	case IconGlobe:
		return "Website"
	case IconPhone:
		return "Phone"
	case IconSend:
		return "Telegram"
	case IconMusic:
		return "Music"
	default:
		return "Link"
	}
}

// ContactLink is one contact method on the contact page. A nil Href means
// the entry is display-only.
type ContactLink struct {
	ID    string  `json:"id"`
	Icon  string  `json:"icon"`
	Label string  `json:"label"`
	Value string  `json:"value"`
	Href  *string `json:"href,omitempty"`
}

// ResolvedIcon returns the icon used to render this link.
func (c ContactLink) ResolvedIcon() Icon {
	return ResolveIcon(c.Icon)
}

// Clickable reports whether the link has a target.
func (c ContactLink) Clickable() bool {
	return c.Href != nil && *c.Href != ""
}
