// Package catalog maps players, videos, and their associations onto the row
// store. Row 0 of each sheet is the header; every read drops it, coerces the
// remaining rows positionally, and filters out rows that fail their validity
// predicate, which is how soft-deleted records disappear from listings.
//
// Identifiers are assigned as 1 + max(valid IDs), so gaps below the current
// maximum are never refilled. Delete discipline is per entity and applied
// uniformly: players are physically removed, videos are soft-deleted by
// blanking the name cell, associations are soft-deleted by zeroing player_id.
//
// Reads go through two explicit cache tiers: a wall-clock TTL cache inside
// Service (invalidated by every mutating call) and a request-scoped Session
// memo created per logical request.
package catalog
