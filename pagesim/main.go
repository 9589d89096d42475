// Command pagesim translates logical addresses through single-level page
// tables.
package main

import "github.com/sarchlab/pagesim/pagesim/cmd"

func main() {
	cmd.Execute()
}
