/*
DESCRIPTION
  log.go provides the package-level logger shared by every h264dec
  component. It wraps zerolog the way bugVanisher/streamer's common/errs
  and pusher packages do: one process-wide logger, leveled output, no
  ANSI colour handling (that belongs to the CLI front end, not the core).

AUTHORS
  h264dec contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package log provides the structured logger used throughout h264dec.
package log

import (
	"os"

	"github.com/rs/zerolog"
)

// L is the package-level logger. Components log through this rather than
// holding their own logger instance, mirroring the teacher's package-level
// logger convention.
var L = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger().Level(zerolog.InfoLevel)

// SetDebug toggles debug-level diagnostics for the whole decoder. The
// decoder's Config.Debug field calls this once at start-of-stream.
func SetDebug(on bool) {
	if on {
		L = L.Level(zerolog.DebugLevel)
		return
	}
	L = L.Level(zerolog.InfoLevel)
}
