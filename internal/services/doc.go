// Package services holds the cross-cutting error taxonomy and context helpers
// shared by the row store, the object store, the catalog repositories, and the
// upload orchestrator.
//
// Errors carry two audiences: the full %w chain with component and operation
// detail goes to logs, while UserMessage extracts the stable, user-facing
// message that action results surface. Specific messages (not found,
// validation, upload incomplete) survive verbatim; everything else flattens
// to the operation's generic message so transport detail never leaks to end
// users.
package services
