/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command attribution coerces values and builds records from YAML class
// manifests.
package main

func main() {
	Execute()
}
