/*
Package registry holds the name-keyed registries behind attribution classes.

Names[T] maps qualified class names to values. Names are namespaced with a dot
("Music.Album"); Resolve looks a bare name up from the innermost namespace of
the requesting class outwards and then at the top level:

	classes := registry.New[*Class]()
	_ = classes.Register("Music.Album", album)
	_ = classes.Register("Album", topLevelAlbum)

	v, qualified, ok := classes.Resolve("Music.Track", "Album")
	// v == album, qualified == "Music.Album"

The naming helpers derive defaults used by association declarations:

	registry.ClassNameFor("chapters")     // "Chapter"
	registry.ForeignKeyFor("Music.Album") // "album_id"

The registry is thread-safe and should be populated during initialization,
typically in package-level var declarations or init() functions.
*/
package registry
