// Package curation implements the in-memory collection engine at the heart
// of dfx.
//
// An [Engine] owns two named collections: the working list, a staging area
// for freshly fetched results, and the master list, the finalized playlist
// candidate. Items are unique by server id within each collection. The
// engine deduplicates on ingest, moves items between collections, filters
// the working list by required genres, and orders the master list for
// display without ever destroying its arrival order.
//
// All operations are total functions over valid inputs and atomic with
// respect to the single control thread; the only advisory condition is a
// conform request with no genres selected, which leaves the collection
// untouched.
package curation
