// Package campaign implements the fundraising campaign ledger.
//
// The service layer contains all business logic for creating campaigns,
// accepting donations against a goal and deadline, and reading or removing
// campaign records. It depends on the Store and Clock interfaces defined in
// this package and should never import from api/.
//
// Store implementations live in repository/memory/, repository/redis/,
// repository/postgres/, and repository/dynamo/.
package campaign
