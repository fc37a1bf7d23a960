/*
Package datastore connects attribution classes to the stores their
associations load from.

A Source is a single type satisfying both lookup collaborators:

	type Source interface {
	    attribution.Finder // Find(ctx, key any) (*attribution.Record, error)
	    attribution.Lister // All(ctx, q attribution.Query) ([]*attribution.Record, error)
	}

Bind installs a Source on a class so that belongs_to associations pointing at
the class call Find and has_many associations call All.

Implementations:
  - ddb: DynamoDB table lookups by id and by foreign-key index
  - mock: In-memory source with call recording for tests

Key normalizes keys and query values so backends compare 42, "42" and
json.Number("42") alike.
*/
package datastore
