/*
Package ddb serves association lookups from a single DynamoDB table.

A Source is bound to one class. Items are keyed by templates whose
"{field}" macros are replaced with record values:

	src, err := ddb.New(client, "library", chapter,
	    ddb.WithIndexMap(map[string]string{
	        "PK":  "CHAPTER#{id}",
	        "SK":  "CHAPTER#{id}",
	        "PK1": "BOOK#{book_id}",
	        "SK1": "CHAPTER#{id}",
	    }),
	    ddb.WithForeignKeyIndex("book_id", "GSI1"),
	)
	datastore.Bind(chapter, src)

Find issues a GetItem on the PK/SK pair built from the id. All queries the
GSI registered for a foreign key; remaining query keys become filters.
Every item carries an EntityType attribute with the class name.
*/
package ddb
