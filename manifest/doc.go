/*
Package manifest declares classes from YAML:

	classes:
	  - name: Book
	    attributes:
	      - {name: id, type: integer}
	      - {name: title, type: string, required: true}
	    associations:
	      - {name: chapters, kind: has_many}
	  - name: Chapter
	    attributes:
	      - {name: id, type: integer}
	    associations:
	      - {name: book, kind: belongs_to}

Classes are declared in document order, so "extends" must name a class
declared earlier. Association targets may appear anywhere in the document.
*/
package manifest
