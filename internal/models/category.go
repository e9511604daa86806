// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// CategoryAll is the reserved category that means "no filter". It is seeded
// on first start and can never be deleted.
const CategoryAll = "all"

// Category is a named grouping tag for portfolio items. The name is the
// identifier and may contain a "/" to denote a parent/child pair.
type Category struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
