// mxkv administers the server's ordered key-value database.
package main

import "github.com/itsknk/matrix-server/cmd"

func main() {
	cmd.Execute()
}
