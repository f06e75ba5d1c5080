/*
DESCRIPTION
  main.go is the process entry point: it delegates straight to the cobra
  root command and exits with its returned status.

AUTHORS
  h264dec contributors, grounded on bugVanisher-streamer's cmd layout.
*/

package main

import "os"

func main() {
	os.Exit(Execute())
}
