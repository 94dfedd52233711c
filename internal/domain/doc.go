// Package domain contains the core entities of the tagging subsystem:
// newsletter items, canonical labels, and the associations between them.
// Entities carry their own validation; persistence and classification
// concerns live in other packages.
package domain
