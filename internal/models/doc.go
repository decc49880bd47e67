// Package models defines domain entities and persistence interfaces for the fitweek backend.
//
// The package contains two categories of types:
//
// 1. Row-backed entities with full lifecycle management:
//   - [User] : Accounts with credentials and soft delete support
//   - [Post] : User-authored posts shown in the social feed
//
// 2. Plain domain values owned by a single concept:
//   - [Session] : Cookie session rows with expiry
//   - [FriendRequest] : Friendship bookkeeping with a pending/accepted/rejected status
//   - [PointLedger] : Per-user point total plus the set of verified post ids
//   - [TrackingRecord], [Task], [ProgressEntry] : The weekly exercise tracking document
//
// Row-backed entities implement the Model interface providing ID generation, timestamps and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
