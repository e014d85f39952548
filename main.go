// Command chatpipe converts chat conversation exports into Markdown or
// Workbench JSON.
package main

import "github.com/gaurav-prasanna/chatpipe/cmd"

func main() {
	cmd.Execute()
}
