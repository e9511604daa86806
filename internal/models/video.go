// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoType is reserved for future video variants.
type VideoType string

const VideoTypeVideo VideoType = "video"

// Video is a YouTube video shown in the public gallery.
type Video struct {
	ID         uuid.UUID `json:"id"`
	YoutubeURL string    `json:"youtubeUrl"`
	Title      *string   `json:"title"`
	Subtitle   *string   `json:"subtitle"`
	Type       VideoType `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// VideoPatch is a partial update. Omitted fields are left unchanged; an
// explicit null clears a nullable field.
type VideoPatch struct {
	YoutubeURL Field[string] `json:"youtubeUrl"`
	Title      Field[string] `json:"title"`
	Subtitle   Field[string] `json:"subtitle"`
}

// Empty reports whether the patch carries no fields at all.
func (p VideoPatch) Empty() bool {
	return !p.YoutubeURL.Set && !p.Title.Set && !p.Subtitle.Set
}
